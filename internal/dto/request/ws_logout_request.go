package request

// WsLogoutRequest WebSocket 登出请求
// 使用位置：POST /ws/logout
type WsLogoutRequest struct {
	OwnerId string `json:"owner_id" binding:"required"` // 要登出的用户 uuid
}
