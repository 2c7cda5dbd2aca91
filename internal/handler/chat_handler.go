// Package handler 提供 HTTP 请求处理器
// 本文件处理私聊消息相关的 API 请求
// 消息收发的主通道是 WebSocket，这里提供等价的 HTTP 入口和查询接口
package handler

import (
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/service"
	"skillhive_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// ChatHandler 私聊请求处理器
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler 创建私聊处理器实例
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// SendMessage 发送消息
// POST /message/send
// 请求体: request.SendMessageRequest
// 响应: respond.MessageRespond
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.SendMessage(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// EditMessage 编辑消息
// PUT /message/edit
// 请求体: request.EditMessageRequest
func (h *ChatHandler) EditMessage(c *gin.Context) {
	var req request.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.EditMessage(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteMessage 删除消息（软删除）
// PUT /message/delete
// 请求体: request.DeleteMessageRequest
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	var req request.DeleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.DeleteMessage(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 标记会话已读
// PUT /message/read
// 请求体: request.MarkReadRequest
// 响应: { updated: 本次置为已读的消息条数 }
func (h *ChatHandler) MarkRead(c *gin.Context) {
	var req request.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	updated, err := h.chatSvc.MarkMessagesRead(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"updated": updated})
}

// GetMessageHistory 获取会话历史
// GET /message/history?owner_id=xxx&peer_id=yyy
// 响应: []respond.MessageRespond，按时间升序
func (h *ChatHandler) GetMessageHistory(c *gin.Context) {
	ownerId := c.Query("owner_id")
	peerId := c.Query("peer_id")
	if ownerId == "" || peerId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "owner_id和peer_id不能为空"))
		return
	}
	data, err := h.chatSvc.GetMessageHistory(ownerId, peerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetConversations 获取会话列表
// GET /message/conversations?owner_id=xxx
// 响应: []respond.ConversationRespond
func (h *ChatHandler) GetConversations(c *gin.Context) {
	ownerId := c.Query("owner_id")
	if ownerId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "owner_id不能为空"))
		return
	}
	data, err := h.chatSvc.GetConversations(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUnreadCount 获取全部会话的未读消息总数
// GET /message/unreadCount?owner_id=xxx
// 响应: { count }
func (h *ChatHandler) GetUnreadCount(c *gin.Context) {
	ownerId := c.Query("owner_id")
	if ownerId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "owner_id不能为空"))
		return
	}
	count, err := h.chatSvc.GetUnreadCount(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"count": count})
}
