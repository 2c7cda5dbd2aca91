package respond

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/user_service.go: Login
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AvatarUrl    string `json:"avatar_url"`
	Bio          string `json:"bio"`
	CreatedAt    string `json:"created_at"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
