// Package router 提供 HTTP 路由注册
// 本文件定义通知相关的路由（需要认证）
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes 注册通知相关路由
func (rt *Router) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	notificationGroup := rg.Group("/notification")
	{
		notificationGroup.GET("/list", rt.handlers.Notification.GetNotifications)       // 获取通知列表
		notificationGroup.GET("/unreadCount", rt.handlers.Notification.GetUnreadCount)  // 未读通知数
		notificationGroup.PUT("/read", rt.handlers.Notification.MarkRead)               // 标记单条已读
		notificationGroup.PUT("/readAll", rt.handlers.Notification.MarkAllRead)         // 全部标记已读
	}
}
