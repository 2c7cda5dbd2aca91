// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"skillhive_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// UpdateUserInfo 更新用户信息
	UpdateUserInfo(user *model.UserInfo) error
	// UpdateOnlineStatus 更新在线状态
	// online=false 时同时写入最后在线时间
	UpdateOnlineStatus(uuid string, online bool, lastSeenAt time.Time) error
}

// FollowRepository 关注关系数据访问接口
// 每次关注在两个方向各写一条边，参见 model.UserFollow
type FollowRepository interface {
	// Find 查找指定方向的关注边
	Find(userId, targetId string, relation int8) (*model.UserFollow, error)
	// Create 创建关注边
	Create(follow *model.UserFollow) error
	// Delete 删除关注边（硬删除）
	Delete(userId, targetId string, relation int8) error
	// FindTargetIds 查找某方向的全部对端 uuid
	// relation=RelationFollowing 得到我关注的人，RelationFollower 得到关注我的人
	FindTargetIds(userId string, relation int8) ([]string, error)
	// FindPartnerIds 查找与我任一方向有关注关系的全部对端 uuid（去重）
	FindPartnerIds(userId string) ([]string, error)
}

// MessageRepository 私聊消息数据访问接口
type MessageRepository interface {
	// Create 创建消息
	Create(message *model.ChatMessage) error
	// FindByUuid 根据雪花 ID 查找消息
	FindByUuid(uuid int64) (*model.ChatMessage, error)
	// FindByChatId 查找会话全部消息，按创建时间升序
	FindByChatId(chatId string) ([]model.ChatMessage, error)
	// FindLastByChatId 查找会话最新一条消息，无消息时返回 CodeNotFound
	FindLastByChatId(chatId string) (*model.ChatMessage, error)
	// UpdateContent 更新消息内容并置已编辑标记
	// 只触达内容列，不会覆盖并发推进中的状态列
	UpdateContent(uuid int64, content string) error
	// SoftDelete 软删除：清空内容并改为 SYSTEM 类型，行保留
	SoftDelete(uuid int64) error
	// MarkReadByChatIdAndReceiver 将会话内接收者的全部未读消息置为已读
	// 单条 UPDATE 完成，返回受影响行数
	MarkReadByChatIdAndReceiver(chatId, receiveId string, readAt time.Time) (int64, error)
	// CountUnreadByChatIdAndReceiver 统计会话内接收者的未读数
	CountUnreadByChatIdAndReceiver(chatId, receiveId string) (int64, error)
	// CountUnreadByReceiver 统计接收者全部会话的未读总数
	CountUnreadByReceiver(receiveId string) (int64, error)
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// Create 创建通知
	Create(notification *model.Notification) error
	// FindById 根据主键查找通知
	FindById(id uint) (*model.Notification, error)
	// FindByRecipient 查找接收者的全部通知，按创建时间降序
	FindByRecipient(recipientId string) ([]model.Notification, error)
	// CountUnreadByRecipient 统计接收者的未读通知数
	CountUnreadByRecipient(recipientId string) (int64, error)
	// MarkRead 标记单条通知已读
	MarkRead(id uint) error
	// MarkAllRead 标记接收者全部通知已读
	MarkAllRead(recipientId string) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB
	User         UserRepository
	Follow       FollowRepository
	Message      MessageRepository
	Notification NotificationRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		Follow:       NewFollowRepository(db),
		Message:      NewMessageRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
