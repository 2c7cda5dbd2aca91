// Package service 业务层装配
// provider.go 负责按依赖顺序构造各 Service 并聚合为单一入口
package service

import (
	"skillhive_server/internal/dao/mysql/repository"
	myredis "skillhive_server/internal/dao/redis"
	"skillhive_server/internal/service/chat"
	"skillhive_server/internal/service/notification"
	"skillhive_server/internal/service/presence"
	"skillhive_server/internal/service/relationship"
	"skillhive_server/internal/service/user"
)

// Services 聚合所有业务服务
type Services struct {
	User         UserService
	Chat         ChatService
	Notification NotificationService
	Relationship RelationshipService
	Presence     PresenceService
}

// Svc 全局服务入口，初始化后只读
var Svc *Services

// NewServices 按依赖顺序构造所有服务
// pusher 由网关 Hub 实现；Hub 对 Service 的反向依赖
// （命令分发、在线状态）由 main 在构造完成后通过 setter 注入
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, pusher Pusher) *Services {
	presenceSvc := presence.NewPresenceService(repos, cache)
	notificationSvc := notification.NewNotificationService(repos, pusher)
	chatSvc := chat.NewChatService(repos, cache, pusher)
	relationshipSvc := relationship.NewRelationshipService(repos, notificationSvc)
	userSvc := user.NewUserService(repos, cache)

	return &Services{
		User:         userSvc,
		Chat:         chatSvc,
		Notification: notificationSvc,
		Relationship: relationshipSvc,
		Presence:     presenceSvc,
	}
}

// InitServices 初始化全局服务入口
func InitServices(repos *repository.Repositories, cache myredis.AsyncCacheService, pusher Pusher) {
	Svc = NewServices(repos, cache, pusher)
}
