package request

// NotificationReadRequest 标记单条通知已读请求
// 使用位置:
//   - internal/handler/notification_handler.go: MarkRead
type NotificationReadRequest struct {
	NotificationId uint   `json:"notification_id" binding:"required"`
	OwnerId        string `json:"owner_id" binding:"required"`
}
