// Package mq 提供 Kafka 基础设施管理
// kafka_client.go
// 核心职责：
// 1. 封装 Kafka 底层连接 (Writer/Reader)
// 2. 提供聊天命令和社交事件两个主题的读写接口
// 3. 纯技术组件，不包含业务逻辑
package mq

import (
	"context"
	"time"

	myconfig "skillhive_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ctx = context.Background()

type kafkaService struct {
	ChatWriter   *kafka.Writer
	ChatReader   *kafka.Reader
	SocialWriter *kafka.Writer
	SocialReader *kafka.Reader
	KafkaConn    *kafka.Conn
}

var KafkaService = new(kafkaService)

// KafkaInit 初始化kafka
func (k *kafkaService) KafkaInit() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	k.ChatWriter = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.ChatTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	k.ChatReader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.ChatTopic,
		CommitInterval: kafkaConfig.Timeout * time.Second,
		GroupID:        "chat",
		StartOffset:    kafka.LastOffset,
	})
	k.SocialWriter = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.SocialTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	k.SocialReader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.SocialTopic,
		CommitInterval: kafkaConfig.Timeout * time.Second,
		GroupID:        "social",
		StartOffset:    kafka.LastOffset,
	})
}

func (k *kafkaService) KafkaClose() {
	if err := k.ChatWriter.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := k.ChatReader.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := k.SocialWriter.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := k.SocialReader.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

// CreateTopics 创建聊天和社交事件主题
// 已存在的主题不会重复创建
func (k *kafkaService) CreateTopics() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig

	var err error
	k.KafkaConn, err = kafka.Dial("tcp", kafkaConfig.HostPort)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             kafkaConfig.ChatTopic,
			NumPartitions:     kafkaConfig.Partition,
			ReplicationFactor: 1,
		},
		{
			Topic:             kafkaConfig.SocialTopic,
			NumPartitions:     kafkaConfig.Partition,
			ReplicationFactor: 1,
		},
	}

	if err = k.KafkaConn.CreateTopics(topicConfigs...); err != nil {
		zap.L().Error(err.Error())
	}
}

// WriteMessage 向聊天命令主题写入消息
func (k *kafkaService) WriteMessage(ctx context.Context, key, value []byte) error {
	return k.ChatWriter.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

// WriteSocialEvent 向社交事件主题写入事件
func (k *kafkaService) WriteSocialEvent(ctx context.Context, key, value []byte) error {
	return k.SocialWriter.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}
