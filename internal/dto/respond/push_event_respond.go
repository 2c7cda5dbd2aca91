package respond

// WebSocket 下行推送事件类型
const (
	EventMessageNew      = "message.new"
	EventMessageEdited   = "message.edited"
	EventMessageDeleted  = "message.deleted"
	EventReadReceipt     = "read.receipt"
	EventNotificationNew = "notification.new"
)

// PushEventRespond 下行推送信封 (WebSocket)
// data 按 event 取对应的 payload：
//   - message.*           -> MessageRespond
//   - read.receipt        -> ReadReceiptRespond
//   - notification.new    -> NotificationRespond
//
// 使用位置:
//   - internal/gateway/websocket/conn_manager.go
//   - internal/service/chat/service.go
type PushEventRespond struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// ReadReceiptRespond 已读回执 payload
// 推给发送者，告知 reader 已读完 chat_id 会话内的消息
type ReadReceiptRespond struct {
	ChatId   string `json:"chat_id"`
	ReaderId string `json:"reader_id"`
	ReadAt   string `json:"read_at"`
}
