package respond

// NotificationRespond 通知响应
// 使用位置:
//   - internal/service/notification/notification_service.go: GetNotifications
//   - internal/gateway/websocket 推送 payload
type NotificationRespond struct {
	NotificationId uint   `json:"notification_id"`
	RecipientId    string `json:"recipient_id"`
	ActorId        string `json:"actor_id"`
	ActorName      string `json:"actor_name"`
	ActorAvatar    string `json:"actor_avatar"`
	Type           string `json:"type"`
	Message        string `json:"message"`
	RelatedPostId  string `json:"related_post_id,omitempty"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}
