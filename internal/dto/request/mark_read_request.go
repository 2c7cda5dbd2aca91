package request

// MarkReadRequest 标记会话已读请求
// owner_id 为读者，peer_id 为会话对端，
// 将该会话内对端发给读者的全部未读消息置为已读
// 使用位置:
//   - internal/handler/chat_handler.go: MarkRead
//   - internal/service/chat/service.go: MarkMessagesRead
type MarkReadRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	PeerId  string `json:"peer_id" binding:"required"`
}
