package respond

// RegisterRespond 用户注册响应
// 注册成功后直接签发令牌，免二次登录
// 使用位置:
//   - internal/service/user/user_service.go: Register
type RegisterRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AvatarUrl    string `json:"avatar_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
