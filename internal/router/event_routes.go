// Package router 提供 HTTP 路由注册
// 本文件定义内部服务间的事件投递路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes 注册社交事件投递路由
// 供内容服务调用，部署时应只对内网开放
func (rt *Router) RegisterEventRoutes(r *gin.Engine) {
	r.POST("/event/social", rt.handlers.Event.HandleSocialEvent)
}
