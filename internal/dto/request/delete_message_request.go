package request

// DeleteMessageRequest 删除消息请求 (WebSocket / HTTP)
// 软删除，只有发送者本人可以删除
// 使用位置:
//   - internal/service/chat/service.go: DeleteMessage
type DeleteMessageRequest struct {
	MessageId string `json:"message_id" binding:"required"`
	SendId    string `json:"send_id" binding:"required"`
}
