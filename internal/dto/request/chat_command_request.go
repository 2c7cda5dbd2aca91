package request

import "encoding/json"

// 客户端经 WebSocket 上行的命令类型
const (
	CommandSendMessage   = "message.send"
	CommandEditMessage   = "message.edit"
	CommandDeleteMessage = "message.delete"
	CommandMarkRead      = "message.read"
)

// ChatCommandRequest 聊天命令信封 (WebSocket 上行)
// data 按 command 再解码为对应的请求体
// 使用位置:
//   - internal/gateway/websocket/conn_manager.go: Read
//   - internal/gateway/websocket/hub.go: Start
//   - internal/infrastructure/mq/kafka_chat_broker.go: Start
type ChatCommandRequest struct {
	Command string          `json:"command" binding:"required"`
	Data    json.RawMessage `json:"data" binding:"required"`
}
