// Package handler 提供 HTTP 请求处理器
// 本文件处理关注关系相关的 API 请求
package handler

import (
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/service"
	"skillhive_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// RelationshipHandler 关注关系请求处理器
type RelationshipHandler struct {
	relationshipSvc service.RelationshipService
}

// NewRelationshipHandler 创建关注关系处理器实例
func NewRelationshipHandler(relationshipSvc service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationshipSvc: relationshipSvc}
}

// Follow 关注用户
// POST /friend/follow
// 请求体: request.FollowRequest
func (h *RelationshipHandler) Follow(c *gin.Context) {
	var req request.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.relationshipSvc.Follow(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Unfollow 取消关注
// POST /friend/unfollow
// 请求体: request.FollowRequest
func (h *RelationshipHandler) Unfollow(c *gin.Context) {
	var req request.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.relationshipSvc.Unfollow(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetFollowingList 获取我关注的用户列表
// GET /friend/followingList?user_id=xxx
// 响应: []respond.UserInfoRespond
func (h *RelationshipHandler) GetFollowingList(c *gin.Context) {
	userId := c.Query("user_id")
	if userId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "user_id不能为空"))
		return
	}
	data, err := h.relationshipSvc.GetFollowingList(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetFollowerList 获取关注我的用户列表
// GET /friend/followerList?user_id=xxx
// 响应: []respond.UserInfoRespond
func (h *RelationshipHandler) GetFollowerList(c *gin.Context) {
	userId := c.Query("user_id")
	if userId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "user_id不能为空"))
		return
	}
	data, err := h.relationshipSvc.GetFollowerList(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
