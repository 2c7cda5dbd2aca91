package respond

// MessageRespond 私聊消息响应
// message_id 为雪花 ID 字符串，避免 JavaScript 精度丢失
// 使用位置:
//   - internal/service/chat/service.go: SendMessage, GetMessageHistory
//   - internal/gateway/websocket 推送 payload
type MessageRespond struct {
	MessageId string `json:"message_id"`
	ChatId    string `json:"chat_id"`
	SendId    string `json:"send_id"`
	ReceiveId string `json:"receive_id"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	IsRead    bool   `json:"is_read"`
	ReadAt    string `json:"read_at,omitempty"`
	IsEdited  bool   `json:"is_edited"`
	IsDeleted bool   `json:"is_deleted"`
	CreatedAt string `json:"created_at"`
}
