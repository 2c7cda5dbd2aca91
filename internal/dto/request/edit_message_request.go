package request

// EditMessageRequest 编辑消息请求 (WebSocket / HTTP)
// 只有发送者本人可以编辑，message_id 为雪花 ID 字符串
// 使用位置:
//   - internal/service/chat/service.go: EditMessage
type EditMessageRequest struct {
	MessageId string `json:"message_id" binding:"required"`
	SendId    string `json:"send_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}
