// Package notification 实现通知业务逻辑
// 消费社交动作事件（关注/评论/点赞），生成通知记录并实时推送
package notification

import (
	"encoding/json"

	"go.uber.org/zap"

	"skillhive_server/internal/dao/mysql/repository"
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/dto/respond"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/constants"
	"skillhive_server/pkg/enum/notification/notification_type_enum"
	"skillhive_server/pkg/errorx"
)

// Pusher 下行推送接口（由网关 Hub 实现）
type Pusher interface {
	PushToUser(userId string, payload []byte, messageUuid int64) bool
}

// notificationService 通知业务逻辑实现
type notificationService struct {
	repos  *repository.Repositories
	pusher Pusher
}

// NewNotificationService 构造函数
func NewNotificationService(repos *repository.Repositories, pusher Pusher) *notificationService {
	return &notificationService{repos: repos, pusher: pusher}
}

// snippet 按字符截断评论内容生成摘要
// 按 rune 截断，避免把多字节字符切半
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= constants.MESSAGE_SNIPPET_LEN {
		return content
	}
	return string(runes[:constants.MESSAGE_SNIPPET_LEN]) + "..."
}

// create 创建通知并推送
// 自己触发的动作不生成通知；推送在落库成功之后，失败只记日志
func (s *notificationService) create(recipientId, actorId, typ, message, relatedPostId string) error {
	if recipientId == actorId {
		return nil
	}
	if _, err := s.repos.User.FindByUuid(recipientId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "通知接收者不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	notification := model.Notification{
		RecipientId:   recipientId,
		ActorId:       actorId,
		Type:          typ,
		Message:       message,
		RelatedPostId: relatedPostId,
	}
	if err := s.repos.Notification.Create(&notification); err != nil {
		zap.L().Error("创建通知失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	s.push(&notification)
	return nil
}

// push 实时推送新通知
func (s *notificationService) push(notification *model.Notification) {
	if s.pusher == nil {
		return
	}

	rsp := respond.NotificationRespond{
		NotificationId: notification.ID,
		RecipientId:    notification.RecipientId,
		ActorId:        notification.ActorId,
		Type:           notification.Type,
		Message:        notification.Message,
		RelatedPostId:  notification.RelatedPostId,
		IsRead:         notification.IsRead,
		CreatedAt:      notification.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	// 触发者资料查不到不影响推送主体
	if actor, err := s.repos.User.FindByUuid(notification.ActorId); err == nil {
		rsp.ActorName = actor.Username
		rsp.ActorAvatar = actor.AvatarUrl
	}

	payload, err := json.Marshal(respond.PushEventRespond{
		Event: respond.EventNotificationNew,
		Data:  rsp,
	})
	if err != nil {
		zap.L().Error("序列化通知推送失败", zap.Error(err))
		return
	}
	if !s.pusher.PushToUser(notification.RecipientId, payload, 0) {
		zap.L().Debug("通知接收者不在线", zap.String("user", notification.RecipientId))
	}
}

// HandleSocialEvent 处理评论/点赞事件
func (s *notificationService) HandleSocialEvent(req request.SocialEventRequest) error {
	var message string
	switch req.Type {
	case notification_type_enum.Comment:
		message = "commented on your post: " + snippet(req.Content)
	case notification_type_enum.Like:
		message = "reacted " + req.Content + " to your post"
	default:
		return errorx.New(errorx.CodeInvalidParam, "未知的社交事件类型")
	}
	return s.create(req.RecipientId, req.ActorId, req.Type, message, req.RelatedPostId)
}

// NotifyFollow 生成关注通知
func (s *notificationService) NotifyFollow(actorId, recipientId string) error {
	return s.create(recipientId, actorId, notification_type_enum.Follow,
		"started following you.", "")
}

// GetNotifications 获取通知列表，最新的在前
// 触发者资料批量查询后内存组装，避免 N+1
func (s *notificationService) GetNotifications(ownerId string) ([]respond.NotificationRespond, error) {
	notificationList, err := s.repos.Notification.FindByRecipient(ownerId)
	if err != nil {
		zap.L().Error("查询通知列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	actorIdSet := make(map[string]struct{}, len(notificationList))
	for i := range notificationList {
		actorIdSet[notificationList[i].ActorId] = struct{}{}
	}
	actorIds := make([]string, 0, len(actorIdSet))
	for id := range actorIdSet {
		actorIds = append(actorIds, id)
	}

	actorMap := make(map[string]*model.UserInfo, len(actorIds))
	actors, err := s.repos.User.FindByUuids(actorIds)
	if err != nil {
		zap.L().Error("批量查询触发者失败", zap.Error(err))
	} else {
		for i := range actors {
			actorMap[actors[i].Uuid] = &actors[i]
		}
	}

	rspList := make([]respond.NotificationRespond, 0, len(notificationList))
	for i := range notificationList {
		n := &notificationList[i]
		rsp := respond.NotificationRespond{
			NotificationId: n.ID,
			RecipientId:    n.RecipientId,
			ActorId:        n.ActorId,
			Type:           n.Type,
			Message:        n.Message,
			RelatedPostId:  n.RelatedPostId,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if actor, ok := actorMap[n.ActorId]; ok {
			rsp.ActorName = actor.Username
			rsp.ActorAvatar = actor.AvatarUrl
		}
		rspList = append(rspList, rsp)
	}
	return rspList, nil
}

// GetUnreadCount 获取未读通知数
func (s *notificationService) GetUnreadCount(ownerId string) (int64, error) {
	count, err := s.repos.Notification.CountUnreadByRecipient(ownerId)
	if err != nil {
		zap.L().Error("统计未读通知失败", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	return count, nil
}

// MarkRead 标记单条通知已读
// 仅接收者本人可操作，重复标记幂等
func (s *notificationService) MarkRead(req request.NotificationReadRequest) error {
	notification, err := s.repos.Notification.FindById(req.NotificationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "通知不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if notification.RecipientId != req.OwnerId {
		return errorx.New(errorx.CodeForbidden, "只能操作自己的通知")
	}
	if notification.IsRead {
		return nil
	}
	if err := s.repos.Notification.MarkRead(req.NotificationId); err != nil {
		zap.L().Error("标记通知已读失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// MarkAllRead 标记全部通知已读
func (s *notificationService) MarkAllRead(ownerId string) error {
	if err := s.repos.Notification.MarkAllRead(ownerId); err != nil {
		zap.L().Error("标记全部通知已读失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
