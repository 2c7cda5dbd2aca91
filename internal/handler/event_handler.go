// Package handler 提供 HTTP 请求处理器
// 本文件处理内容服务投递的社交动作事件
// 内部服务间接口：Kafka 不可用或单机部署时，内容服务走 HTTP 投递
package handler

import (
	"skillhive_server/internal/dto/request"
	"skillhive_server/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler 社交事件处理器
type EventHandler struct {
	notificationSvc service.NotificationService
}

// NewEventHandler 创建社交事件处理器实例
func NewEventHandler(notificationSvc service.NotificationService) *EventHandler {
	return &EventHandler{notificationSvc: notificationSvc}
}

// HandleSocialEvent 接收社交动作事件并生成通知
// POST /event/social
// 请求体: request.SocialEventRequest
func (h *EventHandler) HandleSocialEvent(c *gin.Context) {
	var req request.SocialEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.notificationSvc.HandleSocialEvent(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
