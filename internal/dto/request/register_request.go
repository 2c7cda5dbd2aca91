package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: Register
//   - internal/service/user/user_service.go: Register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
