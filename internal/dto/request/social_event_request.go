package request

// SocialEventRequest 社交动作事件 (HTTP /event/social 或 Kafka social topic)
// 由内容服务在评论/点赞落库后发出，type 为 LIKE / COMMENT，
// content 为评论正文或反应类型（用于生成通知摘要）
// 使用位置:
//   - internal/handler/event_handler.go: SocialEvent
//   - internal/infrastructure/mq/kafka_social_consumer.go
//   - internal/service/notification/notification_service.go
type SocialEventRequest struct {
	Type          string `json:"type" binding:"required"` // LIKE / COMMENT
	ActorId       string `json:"actor_id" binding:"required"`
	RecipientId   string `json:"recipient_id" binding:"required"`
	RelatedPostId string `json:"related_post_id"`
	Content       string `json:"content"`
}
