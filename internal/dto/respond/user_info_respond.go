package respond

// UserInfoRespond 用户公开信息响应
// 用于关注/粉丝列表和用户详情
// 使用位置:
//   - internal/service/relationship/relationship_service.go
//   - internal/service/user/user_service.go: GetUserInfo
type UserInfoRespond struct {
	Uuid       string `json:"uuid"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	AvatarUrl  string `json:"avatar_url"`
	Bio        string `json:"bio"`
	IsOnline   bool   `json:"is_online"`
	LastSeenAt string `json:"last_seen_at,omitempty"`
}
