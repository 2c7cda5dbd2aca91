// Package router 提供 HTTP 路由注册
// 本文件定义私聊消息相关的路由（需要认证）
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由
// 收发的主通道是 WebSocket，这里是等价的 HTTP 入口和查询接口
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	messageGroup := rg.Group("/message")
	{
		messageGroup.POST("/send", rt.handlers.Chat.SendMessage)              // 发送消息
		messageGroup.PUT("/edit", rt.handlers.Chat.EditMessage)               // 编辑消息
		messageGroup.PUT("/delete", rt.handlers.Chat.DeleteMessage)           // 删除消息（软删除）
		messageGroup.PUT("/read", rt.handlers.Chat.MarkRead)                  // 标记会话已读
		messageGroup.GET("/history", rt.handlers.Chat.GetMessageHistory)      // 获取会话历史
		messageGroup.GET("/conversations", rt.handlers.Chat.GetConversations) // 获取会话列表
		messageGroup.GET("/unreadCount", rt.handlers.Chat.GetUnreadCount)     // 未读消息总数
	}
}
