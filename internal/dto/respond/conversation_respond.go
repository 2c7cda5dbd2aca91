package respond

// ConversationRespond 会话列表项响应
// 会话集合 = 我关注的 ∪ 关注我的，无论有没有聊过
// last_message 对图片/已删除消息显示占位文案
// 使用位置:
//   - internal/service/chat/service.go: GetConversations
type ConversationRespond struct {
	UserId          string `json:"user_id"`
	Username        string `json:"username"`
	AvatarUrl       string `json:"avatar_url"`
	IsOnline        bool   `json:"is_online"`
	LastSeenAt      string `json:"last_seen_at,omitempty"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time,omitempty"`
	UnreadCount     int64  `json:"unread_count"`
}
