// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"skillhive_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 路由
// 升级接口不走 JWT 中间件（浏览器 WebSocket 不便携带 Header），
// 登出接口需要认证
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/wss", rt.handlers.Ws.WsLogin)

	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.JWTAuth())
	{
		wsGroup.POST("/logout", rt.handlers.Ws.WsLogout)
		wsGroup.GET("/onlineList", rt.handlers.Ws.GetOnlineUsers)
	}
}
