package request

// NotificationReadAllRequest 标记全部通知已读请求
// 使用位置:
//   - internal/handler/notification_handler.go: MarkAllRead
type NotificationReadAllRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
}
