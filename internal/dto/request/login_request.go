package request

// LoginRequest 用户登录请求
// 使用位置:
//   - internal/handler/user_handler.go: Login
//   - internal/service/user/user_service.go: Login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}
