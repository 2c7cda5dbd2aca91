package request

// FollowRequest 关注/取关请求
// 使用位置:
//   - internal/handler/relationship_handler.go: Follow, Unfollow
//   - internal/service/relationship/relationship_service.go
type FollowRequest struct {
	UserId   string `json:"user_id" binding:"required"`
	TargetId string `json:"target_id" binding:"required"`
}
