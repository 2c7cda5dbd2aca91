// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理注册、登录、令牌刷新等功能
type UserService interface {
	// Register 用户注册，成功后直接签发令牌
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用刷新令牌换取新的令牌对
	RefreshToken(refreshToken string) (accessToken, newRefreshToken string, err error)
	// Logout 退出登录，吊销刷新令牌
	Logout(userId string) error
	// GetUserInfo 获取用户公开信息
	GetUserInfo(uuid string) (*respond.UserInfoRespond, error)
}

// ChatService 私聊业务接口
// 处理消息收发、编辑、删除、已读和会话列表
type ChatService interface {
	// SendMessage 发送消息：落库后推送给双方
	SendMessage(req request.SendMessageRequest) (*respond.MessageRespond, error)
	// EditMessage 编辑消息，仅发送者可操作
	EditMessage(req request.EditMessageRequest) (*respond.MessageRespond, error)
	// DeleteMessage 软删除消息，仅发送者可操作
	DeleteMessage(req request.DeleteMessageRequest) (*respond.MessageRespond, error)
	// MarkMessagesRead 将会话内对端发来的全部未读消息置为已读，返回条数
	MarkMessagesRead(req request.MarkReadRequest) (int64, error)
	// GetMessageHistory 获取会话全部消息，按时间升序
	GetMessageHistory(ownerId, peerId string) ([]respond.MessageRespond, error)
	// GetConversations 获取会话列表（我关注的 ∪ 关注我的）
	GetConversations(ownerId string) ([]respond.ConversationRespond, error)
	// GetUnreadCount 获取全部会话的未读消息总数
	GetUnreadCount(ownerId string) (int64, error)
	// HandleCommand 处理 WebSocket 上行命令
	HandleCommand(data []byte)
}

// NotificationService 通知业务接口
// 处理社交动作事件落库和通知查询
type NotificationService interface {
	// HandleSocialEvent 处理评论/点赞事件，生成通知
	HandleSocialEvent(req request.SocialEventRequest) error
	// NotifyFollow 生成关注通知
	NotifyFollow(actorId, recipientId string) error
	// GetNotifications 获取通知列表，最新的在前
	GetNotifications(ownerId string) ([]respond.NotificationRespond, error)
	// GetUnreadCount 获取未读通知数
	GetUnreadCount(ownerId string) (int64, error)
	// MarkRead 标记单条通知已读
	MarkRead(req request.NotificationReadRequest) error
	// MarkAllRead 标记全部通知已读
	MarkAllRead(ownerId string) error
}

// RelationshipService 关注关系业务接口
type RelationshipService interface {
	// Follow 关注
	Follow(req request.FollowRequest) error
	// Unfollow 取关
	Unfollow(req request.FollowRequest) error
	// GetFollowingList 获取我关注的用户列表
	GetFollowingList(userId string) ([]respond.UserInfoRespond, error)
	// GetFollowerList 获取关注我的用户列表
	GetFollowerList(userId string) ([]respond.UserInfoRespond, error)
}

// PresenceService 在线状态业务接口
// 由 WebSocket 连接生命周期驱动
type PresenceService interface {
	// Online 用户连接建立
	Online(userId string)
	// Offline 用户连接断开
	Offline(userId string)
	// GetOnlineUsers 获取当前在线用户 uuid 集合
	GetOnlineUsers() ([]string, error)
}

// Pusher 下行推送接口
// 由网关 Hub 实现，Service 层经此接口推送实时事件
type Pusher interface {
	// PushToUser 向指定用户推送事件，用户不在线返回 false
	PushToUser(userId string, payload []byte, messageUuid int64) bool
}
