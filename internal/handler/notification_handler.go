// Package handler 提供 HTTP 请求处理器
// 本文件处理通知相关的 API 请求
package handler

import (
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/service"
	"skillhive_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 通知请求处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// GetNotifications 获取通知列表
// GET /notification/list?owner_id=xxx
// 响应: []respond.NotificationRespond，最新的在前
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	ownerId := c.Query("owner_id")
	if ownerId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "owner_id不能为空"))
		return
	}
	data, err := h.notificationSvc.GetNotifications(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUnreadCount 获取未读通知数
// GET /notification/unreadCount?owner_id=xxx
// 响应: { count }
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	ownerId := c.Query("owner_id")
	if ownerId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "owner_id不能为空"))
		return
	}
	count, err := h.notificationSvc.GetUnreadCount(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"count": count})
}

// MarkRead 标记单条通知已读
// PUT /notification/read
// 请求体: request.NotificationReadRequest
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req request.NotificationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notificationSvc.MarkRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// MarkAllRead 标记全部通知已读
// PUT /notification/readAll
// 请求体: request.NotificationReadAllRequest
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	var req request.NotificationReadAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notificationSvc.MarkAllRead(req.OwnerId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
