// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"skillhive_server/internal/handler"
	"skillhive_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器，持有 Handler 聚合实例
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 公开接口直接挂在引擎上，业务接口统一套 JWT 认证
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// 公开接口（无需认证）
	rt.RegisterPublicUserRoutes(r)
	// 内部服务间接口（由网络层隔离，不走用户认证）
	rt.RegisterEventRoutes(r)
	// WebSocket 升级接口（认证走 client_id 查询参数）
	rt.RegisterWebSocketRoutes(r)

	// 需要认证的业务接口
	authGroup := r.Group("")
	authGroup.Use(middleware.JWTAuth())
	{
		rt.RegisterUserRoutes(authGroup)
		rt.RegisterMessageRoutes(authGroup)
		rt.RegisterNotificationRoutes(authGroup)
		rt.RegisterFriendRoutes(authGroup)
	}
}
