// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"net/http"

	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/gateway/websocket"
	"skillhive_server/internal/service"
	"skillhive_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WsHandler WebSocket 连接处理器
type WsHandler struct {
	presenceSvc service.PresenceService
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(presenceSvc service.PresenceService) *WsHandler {
	return &WsHandler{presenceSvc: presenceSvc}
}

// WsLogin 升级 HTTP 连接为 WebSocket
// GET /wss?client_id=xxx
// 连接建立后注册客户端到在线列表，并触发上线事件
func (h *WsHandler) WsLogin(c *gin.Context) {
	clientId := c.Query("client_id")
	if clientId == "" {
		zap.L().Error("clientId获取失败")
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeInvalidParam,
			"msg":  "clientId获取失败",
		})
		return
	}
	websocket.NewClientInit(c, clientId)
}

// WsLogout WebSocket 登出
// POST /ws/logout
// 请求体: request.WsLogoutRequest
// 从在线列表移除客户端并关闭连接，触发离线事件
func (h *WsHandler) WsLogout(c *gin.Context) {
	var req request.WsLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := websocket.ClientLogout(req.OwnerId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetOnlineUsers 获取当前在线用户 uuid 集合
// GET /ws/onlineList
func (h *WsHandler) GetOnlineUsers(c *gin.Context) {
	users, err := h.presenceSvc.GetOnlineUsers()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"users": users})
}
