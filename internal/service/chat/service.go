// Package chat 实现私聊消息的核心业务逻辑
// 消息发送、编辑、删除、已读回执以及会话列表的组装都在这里完成
package chat

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"skillhive_server/internal/dao/mysql/repository"
	myredis "skillhive_server/internal/dao/redis"
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/dto/respond"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/chatid"
	"skillhive_server/pkg/constants"
	"skillhive_server/pkg/enum/message/message_status_enum"
	"skillhive_server/pkg/enum/message/message_type_enum"
	"skillhive_server/pkg/errorx"
	"skillhive_server/pkg/util/snowflake"
)

var ctx = context.Background()

// Pusher 下行推送接口（由网关 Hub 实现）
type Pusher interface {
	PushToUser(userId string, payload []byte, messageUuid int64) bool
}

// chatService 私聊业务逻辑实现
// 通过构造函数注入 Repository、缓存和推送依赖
type chatService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	pusher Pusher
}

// NewChatService 构造函数
func NewChatService(repos *repository.Repositories, cache myredis.AsyncCacheService, pusher Pusher) *chatService {
	return &chatService{repos: repos, cache: cache, pusher: pusher}
}

// historyCacheKey 会话历史的缓存 key
func historyCacheKey(chatId string) string {
	return "message_history_" + chatId
}

// toMessageRespond 将消息模型转为响应 DTO
func toMessageRespond(m *model.ChatMessage) respond.MessageRespond {
	rsp := respond.MessageRespond{
		MessageId: strconv.FormatInt(m.Uuid, 10),
		ChatId:    m.ChatId,
		SendId:    m.SendId,
		ReceiveId: m.ReceiveId,
		Content:   m.Content,
		Type:      m.Type,
		Status:    m.Status,
		IsRead:    m.IsRead,
		IsEdited:  m.IsEdited,
		IsDeleted: m.IsDeleted,
		CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if m.ReadAt.Valid {
		rsp.ReadAt = m.ReadAt.Time.Format("2006-01-02 15:04:05")
	}
	return rsp
}

// pushEvent 推送下行事件
// 推送是尽力而为的：落库已经成功，推送失败只记日志，不影响调用方
func (s *chatService) pushEvent(userId, event string, data interface{}, messageUuid int64) {
	if s.pusher == nil {
		return
	}
	payload, err := json.Marshal(respond.PushEventRespond{Event: event, Data: data})
	if err != nil {
		zap.L().Error("序列化推送事件失败", zap.Error(err))
		return
	}
	if !s.pusher.PushToUser(userId, payload, messageUuid) {
		zap.L().Debug("用户不在线，跳过推送",
			zap.String("user", userId), zap.String("event", event))
	}
}

// invalidateHistory 同步失效会话历史缓存
// 必须发生在下行推送之前：收到推送立刻拉历史的客户端不能读到旧缓存
func (s *chatService) invalidateHistory(chatId string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, historyCacheKey(chatId)); err != nil {
		zap.L().Error("删除会话历史缓存失败", zap.Error(err))
	}
}

// SendMessage 发送消息
// 1. 校验类型和收发双方
// 2. 生成雪花 ID 并落库，初始状态 DELIVERED
// 3. 落库成功后推送给接收者（带消息 ID 用于状态推进）并回显给发送者
func (s *chatService) SendMessage(req request.SendMessageRequest) (*respond.MessageRespond, error) {
	// 只接受客户端消息类型，SYSTEM 由服务端删除逻辑专用
	if req.Type != message_type_enum.Text && req.Type != message_type_enum.Image {
		return nil, errorx.New(errorx.CodeInvalidParam, "不支持的消息类型")
	}
	chatId, err := chatid.ConversationKey(req.SendId, req.ReceiveId)
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.User.FindByUuid(req.ReceiveId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "接收者不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	message := model.ChatMessage{
		Uuid:      snowflake.GenerateID(),
		ChatId:    chatId,
		SendId:    req.SendId,
		ReceiveId: req.ReceiveId,
		Content:   req.Content,
		Type:      req.Type,
		Status:    message_status_enum.Delivered,
	}
	if err := s.repos.Message.Create(&message); err != nil {
		zap.L().Error("创建消息失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := toMessageRespond(&message)
	s.invalidateHistory(chatId)
	// 推给接收者时带上消息 ID，写出成功后推进 DELIVERED -> RECEIVED
	s.pushEvent(req.ReceiveId, respond.EventMessageNew, rsp, message.Uuid)
	// 给发送者回显
	s.pushEvent(req.SendId, respond.EventMessageNew, rsp, 0)

	return &rsp, nil
}

// findOwnMessage 查找消息并校验归属
func (s *chatService) findOwnMessage(messageIdStr, sendId string) (*model.ChatMessage, error) {
	messageId, err := strconv.ParseInt(messageIdStr, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "非法的消息ID")
	}
	message, err := s.repos.Message.FindByUuid(messageId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "消息不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if message.SendId != sendId {
		return nil, errorx.New(errorx.CodeForbidden, "只能操作自己发送的消息")
	}
	return message, nil
}

// EditMessage 编辑消息
// 仅发送者可编辑，已删除的消息不能编辑
func (s *chatService) EditMessage(req request.EditMessageRequest) (*respond.MessageRespond, error) {
	message, err := s.findOwnMessage(req.MessageId, req.SendId)
	if err != nil {
		return nil, err
	}
	if message.IsDeleted {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息已删除，不能编辑")
	}

	// 只写内容列，不覆盖读取后可能已并发推进的状态列
	if err := s.repos.Message.UpdateContent(message.Uuid, req.Content); err != nil {
		zap.L().Error("更新消息失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	message.Content = req.Content
	message.IsEdited = true

	rsp := toMessageRespond(message)
	s.invalidateHistory(message.ChatId)
	s.pushEvent(message.ReceiveId, respond.EventMessageEdited, rsp, 0)
	s.pushEvent(message.SendId, respond.EventMessageEdited, rsp, 0)

	return &rsp, nil
}

// DeleteMessage 软删除消息
// 清空内容并改为 SYSTEM 类型，行保留，重复删除幂等
func (s *chatService) DeleteMessage(req request.DeleteMessageRequest) (*respond.MessageRespond, error) {
	message, err := s.findOwnMessage(req.MessageId, req.SendId)
	if err != nil {
		return nil, err
	}
	if message.IsDeleted {
		rsp := toMessageRespond(message)
		return &rsp, nil
	}

	if err := s.repos.Message.SoftDelete(message.Uuid); err != nil {
		zap.L().Error("删除消息失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	message.IsDeleted = true
	message.Content = ""
	message.Type = message_type_enum.System

	rsp := toMessageRespond(message)
	s.invalidateHistory(message.ChatId)
	s.pushEvent(message.ReceiveId, respond.EventMessageDeleted, rsp, 0)
	s.pushEvent(message.SendId, respond.EventMessageDeleted, rsp, 0)

	return &rsp, nil
}

// MarkMessagesRead 标记会话已读
// 单条 UPDATE 批量置位；有消息被置位时向对端推送已读回执
func (s *chatService) MarkMessagesRead(req request.MarkReadRequest) (int64, error) {
	chatId, err := chatid.ConversationKey(req.OwnerId, req.PeerId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	affected, err := s.repos.Message.MarkReadByChatIdAndReceiver(chatId, req.OwnerId, now)
	if err != nil {
		zap.L().Error("标记消息已读失败", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}

	if affected > 0 {
		s.invalidateHistory(chatId)
		receipt := respond.ReadReceiptRespond{
			ChatId:   chatId,
			ReaderId: req.OwnerId,
			ReadAt:   now.Format("2006-01-02 15:04:05"),
		}
		s.pushEvent(req.PeerId, respond.EventReadReceipt, receipt, 0)
	}

	return affected, nil
}

// GetMessageHistory 获取会话历史
// 缓存优先，未命中查库后异步回填
func (s *chatService) GetMessageHistory(ownerId, peerId string) ([]respond.MessageRespond, error) {
	chatId, err := chatid.ConversationKey(ownerId, peerId)
	if err != nil {
		return nil, err
	}
	cacheKey := historyCacheKey(chatId)

	if s.cache != nil {
		rspString, err := s.cache.GetOrError(ctx, cacheKey)
		if err == nil {
			var rsp []respond.MessageRespond
			if err := json.Unmarshal([]byte(rspString), &rsp); err != nil {
				zap.L().Error("解析缓存失败", zap.Error(err))
				// 缓存解析失败继续查库
			} else {
				return rsp, nil
			}
		} else if !errorx.IsNotFound(err) {
			zap.L().Error("读取缓存失败", zap.Error(err))
		}
	}

	messageList, err := s.repos.Message.FindByChatId(chatId)
	if err != nil {
		zap.L().Error("查询会话历史失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.MessageRespond, 0, len(messageList))
	for i := range messageList {
		rspList = append(rspList, toMessageRespond(&messageList[i]))
	}

	if s.cache != nil {
		s.cache.SubmitTask(func() {
			jsonBytes, err := json.Marshal(rspList)
			if err != nil {
				zap.L().Error("序列化缓存失败", zap.Error(err))
				return
			}
			if err := s.cache.Set(ctx, cacheKey, string(jsonBytes),
				time.Duration(constants.REDIS_TIMEOUT)*time.Minute); err != nil {
				zap.L().Error("写入缓存失败", zap.Error(err))
			}
		})
	}

	return rspList, nil
}

// conversationEntry 会话列表排序用的中间结构
type conversationEntry struct {
	rsp      respond.ConversationRespond
	lastTime time.Time
	hasLast  bool
}

// GetConversations 获取会话列表
// 会话集合 = 我关注的 ∪ 关注我的，无论有没有聊过；
// 有消息的按最新消息时间降序排在前面，没聊过的排在后面
func (s *chatService) GetConversations(ownerId string) ([]respond.ConversationRespond, error) {
	partnerIds, err := s.repos.Follow.FindPartnerIds(ownerId)
	if err != nil {
		zap.L().Error("查询会话对端失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	users, err := s.repos.User.FindByUuids(partnerIds)
	if err != nil {
		zap.L().Error("批量查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	entries := make([]conversationEntry, 0, len(users))
	for i := range users {
		user := &users[i]
		chatId, err := chatid.ConversationKey(ownerId, user.Uuid)
		if err != nil {
			continue
		}

		entry := conversationEntry{
			rsp: respond.ConversationRespond{
				UserId:    user.Uuid,
				Username:  user.Username,
				AvatarUrl: user.AvatarUrl,
				IsOnline:  user.IsOnline,
			},
		}
		if user.LastSeenAt.Valid {
			entry.rsp.LastSeenAt = user.LastSeenAt.Time.Format("2006-01-02 15:04:05")
		}

		lastMessage, err := s.repos.Message.FindLastByChatId(chatId)
		if err != nil {
			if errorx.GetCode(err) != errorx.CodeNotFound {
				zap.L().Error("查询最新消息失败", zap.Error(err))
			}
			// 还没聊过
			entry.rsp.LastMessage = "Start a conversation"
		} else {
			switch {
			case lastMessage.IsDeleted:
				entry.rsp.LastMessage = "🚫 Message deleted"
			case lastMessage.Type == message_type_enum.Image:
				entry.rsp.LastMessage = "📷 Photo"
			default:
				entry.rsp.LastMessage = lastMessage.Content
			}
			entry.rsp.LastMessageTime = lastMessage.CreatedAt.Format("2006-01-02 15:04:05")
			entry.lastTime = lastMessage.CreatedAt
			entry.hasLast = true
		}

		unread, err := s.repos.Message.CountUnreadByChatIdAndReceiver(chatId, ownerId)
		if err != nil {
			zap.L().Error("统计未读失败", zap.Error(err))
		} else {
			entry.rsp.UnreadCount = unread
		}

		entries = append(entries, entry)
	}

	// 最新消息时间降序，没聊过的排在最后，再按用户名稳定排序
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].hasLast != entries[j].hasLast {
			return entries[i].hasLast
		}
		if entries[i].hasLast && !entries[i].lastTime.Equal(entries[j].lastTime) {
			return entries[i].lastTime.After(entries[j].lastTime)
		}
		return entries[i].rsp.Username < entries[j].rsp.Username
	})

	rspList := make([]respond.ConversationRespond, 0, len(entries))
	for _, entry := range entries {
		rspList = append(rspList, entry.rsp)
	}
	return rspList, nil
}

// GetUnreadCount 获取全部会话的未读消息总数
func (s *chatService) GetUnreadCount(ownerId string) (int64, error) {
	count, err := s.repos.Message.CountUnreadByReceiver(ownerId)
	if err != nil {
		zap.L().Error("统计未读总数失败", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	return count, nil
}

// HandleCommand 处理 WebSocket 上行命令
// 命令处理失败只记日志：上行通道没有请求-响应语义，
// 结果通过下行推送反馈
func (s *chatService) HandleCommand(data []byte) {
	var cmd request.ChatCommandRequest
	if err := json.Unmarshal(data, &cmd); err != nil {
		zap.L().Error("解析命令信封失败", zap.Error(err))
		return
	}

	switch cmd.Command {
	case request.CommandSendMessage:
		var req request.SendMessageRequest
		if err := json.Unmarshal(cmd.Data, &req); err != nil {
			zap.L().Error("解析发送命令失败", zap.Error(err))
			return
		}
		if _, err := s.SendMessage(req); err != nil {
			zap.L().Error("发送消息失败", zap.Error(err))
		}

	case request.CommandEditMessage:
		var req request.EditMessageRequest
		if err := json.Unmarshal(cmd.Data, &req); err != nil {
			zap.L().Error("解析编辑命令失败", zap.Error(err))
			return
		}
		if _, err := s.EditMessage(req); err != nil {
			zap.L().Error("编辑消息失败", zap.Error(err))
		}

	case request.CommandDeleteMessage:
		var req request.DeleteMessageRequest
		if err := json.Unmarshal(cmd.Data, &req); err != nil {
			zap.L().Error("解析删除命令失败", zap.Error(err))
			return
		}
		if _, err := s.DeleteMessage(req); err != nil {
			zap.L().Error("删除消息失败", zap.Error(err))
		}

	case request.CommandMarkRead:
		var req request.MarkReadRequest
		if err := json.Unmarshal(cmd.Data, &req); err != nil {
			zap.L().Error("解析已读命令失败", zap.Error(err))
			return
		}
		if _, err := s.MarkMessagesRead(req); err != nil {
			zap.L().Error("标记已读失败", zap.Error(err))
		}

	default:
		zap.L().Warn("未知命令", zap.String("command", cmd.Command))
	}
}
