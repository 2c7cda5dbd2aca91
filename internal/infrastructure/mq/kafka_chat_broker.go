// Package mq 提供 Kafka 基础设施管理
// kafka_chat_broker.go
// 核心职责：分布式模式下的消息代理实现
// 1. 上行命令经 Kafka 中转，多实例部署时由消费组均衡
// 2. 客户端管理和命令分发复用单机 Hub，本实现只替换传输层
package mq

import (
	"context"
	"fmt"
	"strconv"

	myconfig "skillhive_server/internal/config"
	ws "skillhive_server/internal/gateway/websocket"

	"go.uber.org/zap"
)

// KafkaChatBroker 基于 Kafka 的消息代理
// 内嵌 Hub 复用其客户端管理和命令分发循环，
// Publish 改为写 Kafka，由消费协程把消息送回 Hub 的 Transmit 通道
type KafkaChatBroker struct {
	*ws.Hub
}

// NewKafkaChatBroker 创建 Kafka 消息代理
func NewKafkaChatBroker(hub *ws.Hub) *KafkaChatBroker {
	return &KafkaChatBroker{Hub: hub}
}

// Publish 实现 MessageBroker 接口：发布命令到 Kafka
func (b *KafkaChatBroker) Publish(ctx context.Context, msg []byte) error {
	key := []byte(strconv.Itoa(myconfig.GetConfig().KafkaConfig.Partition))
	return KafkaService.WriteMessage(ctx, key, msg)
}

// Start 启动消费协程和 Hub 主循环
func (b *KafkaChatBroker) Start() {
	// 消费协程：从 Kafka 读取命令并送回 Hub 的 Transmit 通道
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error(fmt.Sprintf("kafka chat consumer panic: %v", r))
			}
		}()
		for {
			kafkaMessage, err := KafkaService.ChatReader.ReadMessage(ctx)
			if err != nil {
				zap.L().Error(err.Error())
				continue
			}
			zap.L().Debug(fmt.Sprintf("topic=%s, partition=%d, offset=%d",
				kafkaMessage.Topic, kafkaMessage.Partition, kafkaMessage.Offset))
			b.Transmit <- kafkaMessage.Value
		}
	}()

	b.Hub.Start()
}

var _ ws.MessageBroker = (*KafkaChatBroker)(nil)
