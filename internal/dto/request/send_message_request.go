package request

// SendMessageRequest 发送私聊消息请求 (WebSocket / Kafka)
// 使用位置:
//   - internal/gateway/websocket/conn_manager.go: Read
//   - internal/service/chat/service.go: SendMessage
type SendMessageRequest struct {
	SendId    string `json:"send_id" binding:"required"`
	ReceiveId string `json:"receive_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Type      string `json:"type" binding:"required"` // TEXT / IMAGE
}
