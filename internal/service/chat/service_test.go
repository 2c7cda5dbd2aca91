package chat

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skillhive_server/internal/dao/mysql/repository"
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/dto/respond"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/enum/message/message_status_enum"
	"skillhive_server/pkg/enum/message/message_type_enum"
	"skillhive_server/pkg/errorx"
	"skillhive_server/pkg/util/snowflake"
)

func TestMain(m *testing.M) {
	if err := snowflake.Init(1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// ==================== 测试替身 ====================

type fakeUserRepo struct {
	users map[string]*model.UserInfo
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := f.users[uuid]; ok {
		return u, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByEmail(email string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0, len(uuids))
	for _, uuid := range uuids {
		if u, ok := f.users[uuid]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}
func (f *fakeUserRepo) Create(user *model.UserInfo) error         { f.users[user.Uuid] = user; return nil }
func (f *fakeUserRepo) UpdateUserInfo(user *model.UserInfo) error { return nil }
func (f *fakeUserRepo) UpdateOnlineStatus(uuid string, online bool, lastSeenAt time.Time) error {
	return nil
}

type fakeMessageRepo struct {
	messages []*model.ChatMessage
	nextId   uint
}

func (f *fakeMessageRepo) Create(message *model.ChatMessage) error {
	f.nextId++
	message.ID = f.nextId
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) FindByUuid(uuid int64) (*model.ChatMessage, error) {
	for _, m := range f.messages {
		if m.Uuid == uuid {
			return m, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeMessageRepo) FindByChatId(chatId string) ([]model.ChatMessage, error) {
	var result []model.ChatMessage
	for _, m := range f.messages {
		if m.ChatId == chatId {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) FindLastByChatId(chatId string) (*model.ChatMessage, error) {
	var last *model.ChatMessage
	for _, m := range f.messages {
		if m.ChatId != chatId {
			continue
		}
		if last == nil || m.CreatedAt.After(last.CreatedAt) ||
			(m.CreatedAt.Equal(last.CreatedAt) && m.ID > last.ID) {
			last = m
		}
	}
	if last == nil {
		return nil, errorx.New(errorx.CodeNotFound, "record not found")
	}
	return last, nil
}

func (f *fakeMessageRepo) UpdateContent(uuid int64, content string) error {
	for _, m := range f.messages {
		if m.Uuid == uuid {
			m.Content = content
			m.IsEdited = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) SoftDelete(uuid int64) error {
	for _, m := range f.messages {
		if m.Uuid == uuid {
			m.IsDeleted = true
			m.Content = ""
			m.Type = message_type_enum.System
		}
	}
	return nil
}

func (f *fakeMessageRepo) MarkReadByChatIdAndReceiver(chatId, receiveId string, readAt time.Time) (int64, error) {
	var affected int64
	for _, m := range f.messages {
		if m.ChatId == chatId && m.ReceiveId == receiveId && !m.IsRead {
			m.IsRead = true
			m.ReadAt.Time = readAt
			m.ReadAt.Valid = true
			m.Status = message_status_enum.Read
			affected++
		}
	}
	return affected, nil
}

func (f *fakeMessageRepo) CountUnreadByChatIdAndReceiver(chatId, receiveId string) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.ChatId == chatId && m.ReceiveId == receiveId && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) CountUnreadByReceiver(receiveId string) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.ReceiveId == receiveId && !m.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeFollowRepo struct {
	partners map[string][]string
}

func (f *fakeFollowRepo) Find(userId, targetId string, relation int8) (*model.UserFollow, error) {
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}
func (f *fakeFollowRepo) Create(follow *model.UserFollow) error              { return nil }
func (f *fakeFollowRepo) Delete(userId, targetId string, relation int8) error { return nil }
func (f *fakeFollowRepo) FindTargetIds(userId string, relation int8) ([]string, error) {
	return nil, nil
}
func (f *fakeFollowRepo) FindPartnerIds(userId string) ([]string, error) {
	return f.partners[userId], nil
}

type push struct {
	userId  string
	payload []byte
	uuid    int64
}

type fakePusher struct {
	pushes []push
}

func (f *fakePusher) PushToUser(userId string, payload []byte, messageUuid int64) bool {
	f.pushes = append(f.pushes, push{userId: userId, payload: payload, uuid: messageUuid})
	return true
}

func (f *fakePusher) eventFor(t *testing.T, index int) respond.PushEventRespond {
	t.Helper()
	var event respond.PushEventRespond
	require.NoError(t, json.Unmarshal(f.pushes[index].payload, &event))
	return event
}

// opLog 记录缓存与推送的先后顺序
type opLog struct {
	ops []string
}

type orderedPusher struct {
	log *opLog
}

func (p *orderedPusher) PushToUser(userId string, payload []byte, messageUuid int64) bool {
	p.log.ops = append(p.log.ops, "push:"+userId)
	return true
}

// orderedCache 只关心 Delete 的时序，其余操作为空实现
type orderedCache struct {
	log *opLog
}

func (c *orderedCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
func (c *orderedCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (c *orderedCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", errorx.New(errorx.CodeNotFound, "not found")
}
func (c *orderedCache) Delete(ctx context.Context, key string) error {
	c.log.ops = append(c.log.ops, "delete:"+key)
	return nil
}
func (c *orderedCache) DeleteByPattern(ctx context.Context, pattern string) error     { return nil }
func (c *orderedCache) DeleteByPatterns(ctx context.Context, patterns []string) error { return nil }
func (c *orderedCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (c *orderedCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	return nil, nil
}
func (c *orderedCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (c *orderedCache) SubmitTask(action func()) { action() }

// ==================== 测试工具 ====================

func newTestService() (*chatService, *fakeUserRepo, *fakeMessageRepo, *fakeFollowRepo, *fakePusher) {
	userRepo := &fakeUserRepo{users: map[string]*model.UserInfo{
		"Ualice000001": {Uuid: "Ualice000001", Username: "alice"},
		"Ubob00000002": {Uuid: "Ubob00000002", Username: "bob"},
		"Ucarol000003": {Uuid: "Ucarol000003", Username: "carol"},
	}}
	messageRepo := &fakeMessageRepo{}
	followRepo := &fakeFollowRepo{partners: map[string][]string{}}
	pusher := &fakePusher{}
	repos := &repository.Repositories{
		User:    userRepo,
		Follow:  followRepo,
		Message: messageRepo,
	}
	svc := NewChatService(repos, nil, pusher)
	return svc, userRepo, messageRepo, followRepo, pusher
}

// ==================== 用例 ====================

func TestSendMessageRejectsInvalidType(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ualice000001",
		ReceiveId: "Ubob00000002",
		Content:   "hi",
		Type:      "VIDEO",
	})
	require.Error(t, err)
	require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestSendMessageRejectsUnknownReceiver(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ualice000001",
		ReceiveId: "Unobody00009",
		Content:   "hi",
		Type:      message_type_enum.Text,
	})
	require.Error(t, err)
	require.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}

func TestSendMessagePersistsAndPushes(t *testing.T) {
	svc, _, messageRepo, _, pusher := newTestService()

	rsp, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ubob00000002",
		ReceiveId: "Ualice000001",
		Content:   "hello alice",
		Type:      message_type_enum.Text,
	})
	require.NoError(t, err)

	// 会话 key 与参数顺序无关
	require.Equal(t, "Ualice000001_Ubob00000002", rsp.ChatId)
	require.Equal(t, message_status_enum.Delivered, rsp.Status)
	require.False(t, rsp.IsRead)
	require.Len(t, messageRepo.messages, 1)

	// 先推接收者（带消息 ID 用于状态推进），再回显发送者
	require.Len(t, pusher.pushes, 2)
	require.Equal(t, "Ualice000001", pusher.pushes[0].userId)
	require.NotZero(t, pusher.pushes[0].uuid)
	require.Equal(t, "Ubob00000002", pusher.pushes[1].userId)
	require.Zero(t, pusher.pushes[1].uuid)
	require.Equal(t, respond.EventMessageNew, pusher.eventFor(t, 0).Event)
}

func TestEditMessageOnlyBySender(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	rsp, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ualice000001",
		ReceiveId: "Ubob00000002",
		Content:   "original",
		Type:      message_type_enum.Text,
	})
	require.NoError(t, err)

	_, err = svc.EditMessage(request.EditMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ubob00000002",
		Content:   "hacked",
	})
	require.Error(t, err)
	require.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	edited, err := svc.EditMessage(request.EditMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ualice000001",
		Content:   "fixed",
	})
	require.NoError(t, err)
	require.Equal(t, "fixed", edited.Content)
	require.True(t, edited.IsEdited)
}

func TestDeleteMessageSoftDeleteIsIdempotent(t *testing.T) {
	svc, _, messageRepo, _, _ := newTestService()

	rsp, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ualice000001",
		ReceiveId: "Ubob00000002",
		Content:   "to be removed",
		Type:      message_type_enum.Text,
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteMessage(request.DeleteMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ualice000001",
	})
	require.NoError(t, err)
	require.True(t, deleted.IsDeleted)
	require.Empty(t, deleted.Content)
	require.Equal(t, message_type_enum.System, deleted.Type)
	// 软删除：行仍然保留
	require.Len(t, messageRepo.messages, 1)

	// 重复删除幂等
	again, err := svc.DeleteMessage(request.DeleteMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ualice000001",
	})
	require.NoError(t, err)
	require.True(t, again.IsDeleted)

	// 已删除的消息不能编辑
	_, err = svc.EditMessage(request.EditMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ualice000001",
		Content:   "resurrect",
	})
	require.Error(t, err)
	require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestMarkMessagesReadSendsReceiptOnlyWhenUpdated(t *testing.T) {
	svc, _, _, _, pusher := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.SendMessage(request.SendMessageRequest{
			SendId:    "Ubob00000002",
			ReceiveId: "Ualice000001",
			Content:   "msg",
			Type:      message_type_enum.Text,
		})
		require.NoError(t, err)
	}
	pusher.pushes = nil

	affected, err := svc.MarkMessagesRead(request.MarkReadRequest{
		OwnerId: "Ualice000001",
		PeerId:  "Ubob00000002",
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, affected)

	// 已读回执只推给对端
	require.Len(t, pusher.pushes, 1)
	require.Equal(t, "Ubob00000002", pusher.pushes[0].userId)
	require.Equal(t, respond.EventReadReceipt, pusher.eventFor(t, 0).Event)

	// 没有新的未读消息时不再推回执
	pusher.pushes = nil
	affected, err = svc.MarkMessagesRead(request.MarkReadRequest{
		OwnerId: "Ualice000001",
		PeerId:  "Ubob00000002",
	})
	require.NoError(t, err)
	require.Zero(t, affected)
	require.Empty(t, pusher.pushes)
}

func TestGetMessageHistoryReturnsAllMessages(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(request.SendMessageRequest{
			SendId:    "Ualice000001",
			ReceiveId: "Ubob00000002",
			Content:   content,
			Type:      message_type_enum.Text,
		})
		require.NoError(t, err)
	}

	history, err := svc.GetMessageHistory("Ubob00000002", "Ualice000001")
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, "one", history[0].Content)
	require.Equal(t, "three", history[2].Content)
}

func TestGetConversationsLabelsAndOrder(t *testing.T) {
	svc, _, messageRepo, followRepo, _ := newTestService()
	followRepo.partners["Ualice000001"] = []string{"Ubob00000002", "Ucarol000003"}

	// bob: 最新一条是图片消息
	now := time.Now()
	bobMsg := &model.ChatMessage{
		Uuid: 1, ChatId: "Ualice000001_Ubob00000002",
		SendId: "Ubob00000002", ReceiveId: "Ualice000001",
		Content: "img.png", Type: message_type_enum.Image,
		Status: message_status_enum.Delivered,
	}
	bobMsg.CreatedAt = now.Add(-time.Hour)
	require.NoError(t, messageRepo.Create(bobMsg))

	// carol: 没聊过

	conversations, err := svc.GetConversations("Ualice000001")
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// 有消息的会话排在前面
	require.Equal(t, "Ubob00000002", conversations[0].UserId)
	require.Equal(t, "📷 Photo", conversations[0].LastMessage)
	require.EqualValues(t, 1, conversations[0].UnreadCount)

	require.Equal(t, "Ucarol000003", conversations[1].UserId)
	require.Equal(t, "Start a conversation", conversations[1].LastMessage)
	require.Empty(t, conversations[1].LastMessageTime)
	require.Zero(t, conversations[1].UnreadCount)
}

func TestGetConversationsDeletedMessageLabel(t *testing.T) {
	svc, _, _, followRepo, _ := newTestService()
	followRepo.partners["Ualice000001"] = []string{"Ubob00000002"}

	rsp, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ualice000001",
		ReceiveId: "Ubob00000002",
		Content:   "oops",
		Type:      message_type_enum.Text,
	})
	require.NoError(t, err)
	_, err = svc.DeleteMessage(request.DeleteMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ualice000001",
	})
	require.NoError(t, err)

	conversations, err := svc.GetConversations("Ualice000001")
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	require.Equal(t, "🚫 Message deleted", conversations[0].LastMessage)
}

func TestHandleCommandDispatchesSend(t *testing.T) {
	svc, _, messageRepo, _, _ := newTestService()

	data, err := json.Marshal(request.SendMessageRequest{
		SendId:    "Ualice000001",
		ReceiveId: "Ubob00000002",
		Content:   "via command",
		Type:      message_type_enum.Text,
	})
	require.NoError(t, err)
	envelope, err := json.Marshal(request.ChatCommandRequest{
		Command: request.CommandSendMessage,
		Data:    data,
	})
	require.NoError(t, err)

	svc.HandleCommand(envelope)
	require.Len(t, messageRepo.messages, 1)
	require.Equal(t, "via command", messageRepo.messages[0].Content)
}

func TestHandleCommandIgnoresUnknownCommand(t *testing.T) {
	svc, _, messageRepo, _, _ := newTestService()

	svc.HandleCommand([]byte(`{"command":"message.unknown","data":{}}`))
	require.Empty(t, messageRepo.messages)
}

func TestEditAndDeleteKeepReadState(t *testing.T) {
	svc, _, messageRepo, _, _ := newTestService()

	rsp, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ualice000001",
		ReceiveId: "Ubob00000002",
		Content:   "original",
		Type:      message_type_enum.Text,
	})
	require.NoError(t, err)

	// 编辑落库前对端已把消息读掉
	affected, err := svc.MarkMessagesRead(request.MarkReadRequest{
		OwnerId: "Ubob00000002",
		PeerId:  "Ualice000001",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	_, err = svc.EditMessage(request.EditMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ualice000001",
		Content:   "edited",
	})
	require.NoError(t, err)

	// 内容列更新，已读状态不被旧快照覆盖
	stored := messageRepo.messages[0]
	require.Equal(t, "edited", stored.Content)
	require.True(t, stored.IsEdited)
	require.Equal(t, message_status_enum.Read, stored.Status)
	require.True(t, stored.IsRead)
	require.True(t, stored.ReadAt.Valid)

	_, err = svc.DeleteMessage(request.DeleteMessageRequest{
		MessageId: rsp.MessageId,
		SendId:    "Ualice000001",
	})
	require.NoError(t, err)
	require.True(t, stored.IsDeleted)
	require.Equal(t, message_status_enum.Read, stored.Status)
	require.True(t, stored.IsRead)
}

func TestSendMessageInvalidatesHistoryBeforePush(t *testing.T) {
	log := &opLog{}
	userRepo := &fakeUserRepo{users: map[string]*model.UserInfo{
		"Ualice000001": {Uuid: "Ualice000001", Username: "alice"},
		"Ubob00000002": {Uuid: "Ubob00000002", Username: "bob"},
	}}
	repos := &repository.Repositories{
		User:    userRepo,
		Follow:  &fakeFollowRepo{partners: map[string][]string{}},
		Message: &fakeMessageRepo{},
	}
	svc := NewChatService(repos, &orderedCache{log: log}, &orderedPusher{log: log})

	_, err := svc.SendMessage(request.SendMessageRequest{
		SendId:    "Ubob00000002",
		ReceiveId: "Ualice000001",
		Content:   "hi",
		Type:      message_type_enum.Text,
	})
	require.NoError(t, err)

	// 缓存失效先于任何推送：收到推送的客户端拉历史不会命中旧缓存
	require.Equal(t, []string{
		"delete:message_history_Ualice000001_Ubob00000002",
		"push:Ualice000001",
		"push:Ubob00000002",
	}, log.ops)
}
