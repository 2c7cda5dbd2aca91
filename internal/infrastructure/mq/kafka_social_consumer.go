// Package mq 提供 Kafka 基础设施管理
// kafka_social_consumer.go
// 核心职责：消费内容服务发出的社交动作事件（评论/点赞），
// 反序列化后交给注入的事件处理器生成通知
package mq

import (
	"encoding/json"
	"fmt"

	"skillhive_server/internal/dto/request"

	"go.uber.org/zap"
)

// SocialEventHandler 社交事件处理接口
// 由 NotificationService 实现并注入，MQ 层不理解通知语义
type SocialEventHandler interface {
	HandleSocialEvent(req request.SocialEventRequest) error
}

// SocialEventConsumer 社交事件消费者
type SocialEventConsumer struct {
	handler SocialEventHandler
}

// NewSocialEventConsumer 创建社交事件消费者
func NewSocialEventConsumer(handler SocialEventHandler) *SocialEventConsumer {
	return &SocialEventConsumer{handler: handler}
}

// Start 启动消费死循环
// 单条事件处理失败只记日志，不中断消费
func (c *SocialEventConsumer) Start() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error(fmt.Sprintf("kafka social consumer panic: %v", r))
		}
	}()
	for {
		kafkaMessage, err := KafkaService.SocialReader.ReadMessage(ctx)
		if err != nil {
			zap.L().Error(err.Error())
			continue
		}

		var eventReq request.SocialEventRequest
		if err := json.Unmarshal(kafkaMessage.Value, &eventReq); err != nil {
			zap.L().Error(err.Error())
			continue
		}

		if err := c.handler.HandleSocialEvent(eventReq); err != nil {
			zap.L().Error("处理社交事件失败", zap.Error(err),
				zap.String("type", eventReq.Type),
				zap.String("actor", eventReq.ActorId))
		}
	}
}
