// Package handler 提供 HTTP 请求处理器
// 本文件处理用户相关的 API 请求
package handler

import (
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/service"
	"skillhive_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
// 通过构造函数注入 UserService
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 用户注册
// POST /user/register
// 请求体: request.RegisterRequest
// 响应: respond.RegisterRespond (用户信息 + JWT Token)
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login 用户登录（密码登录）
// POST /user/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond (用户信息 + JWT Token)
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshToken 刷新令牌对
// POST /user/refresh
// 请求体: request.RefreshTokenRequest
// 响应: { access_token, refresh_token }
// 刷新成功后旧的刷新令牌立即失效（单会话轮换）
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	accessToken, refreshToken, err := h.userSvc.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout 退出登录，吊销刷新令牌
// POST /user/logout (需要认证)
func (h *UserHandler) Logout(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "请先登录"))
		return
	}
	if err := h.userSvc.Logout(userId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetUserInfo 获取用户公开信息
// GET /user/info?uuid=xxx (需要认证)
// uuid 为空时返回当前登录用户自己的信息
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	uuid := c.Query("uuid")
	if uuid == "" {
		uuid = c.GetString("user_id")
	}
	if uuid == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "uuid不能为空"))
		return
	}
	data, err := h.userSvc.GetUserInfo(uuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
