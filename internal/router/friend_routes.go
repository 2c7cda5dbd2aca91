// Package router 提供 HTTP 路由注册
// 本文件定义关注关系相关的路由（需要认证）
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterFriendRoutes 注册关注关系相关路由
func (rt *Router) RegisterFriendRoutes(rg *gin.RouterGroup) {
	friendGroup := rg.Group("/friend")
	{
		friendGroup.POST("/follow", rt.handlers.Relationship.Follow)               // 关注
		friendGroup.POST("/unfollow", rt.handlers.Relationship.Unfollow)           // 取关
		friendGroup.GET("/followingList", rt.handlers.Relationship.GetFollowingList) // 我关注的
		friendGroup.GET("/followerList", rt.handlers.Relationship.GetFollowerList)   // 关注我的
	}
}
