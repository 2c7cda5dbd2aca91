// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicUserRoutes 注册公开的用户路由（无需认证）
func (rt *Router) RegisterPublicUserRoutes(r *gin.Engine) {
	r.POST("/user/register", rt.handlers.User.Register) // 注册
	r.POST("/user/login", rt.handlers.User.Login)       // 密码登录
	r.POST("/user/refresh", rt.handlers.User.RefreshToken)
}

// RegisterUserRoutes 注册需要认证的用户路由
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.POST("/logout", rt.handlers.User.Logout)  // 退出登录
		userGroup.GET("/info", rt.handlers.User.GetUserInfo) // 获取用户信息
	}
}
