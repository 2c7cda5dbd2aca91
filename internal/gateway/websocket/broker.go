// Package websocket 实现实时消息网关
// broker.go
// 核心职责：定义消息代理接口
// 抽象命令发布和客户端管理，支持 Kafka 和 Channel 两种实现
package websocket

import "context"

// MessageBroker 定义消息代理接口
// 支持多种实现：KafkaChatBroker (分布式), Hub (单机 Channel 模式)
type MessageBroker interface {
	// Publish 发布上行命令到消息队列/通道
	Publish(ctx context.Context, msg []byte) error
	// RegisterClient 注册客户端连接
	RegisterClient(client *UserConn)
	// UnregisterClient 注销客户端连接
	UnregisterClient(client *UserConn)
	// GetClient 获取指定用户的连接
	GetClient(userId string) *UserConn
	// Start 启动消费循环
	Start()
	// Close 关闭代理资源
	Close()
}

// GlobalBroker 全局消息代理实例
// 在 main.go 中根据配置初始化为 KafkaChatBroker 或 Hub
var GlobalBroker MessageBroker

// CommandHandler 上行命令处理接口
// 由 Service 层实现并注入，网关只负责收发字节，不理解业务
type CommandHandler interface {
	// HandleCommand 处理一条上行命令（已在网关侧完成读取）
	HandleCommand(data []byte)
}

// PresenceHandler 在线状态变更接口
// 连接生命周期事件由网关产生，落库逻辑由 Service 层实现
type PresenceHandler interface {
	// Online 用户连接建立
	Online(userId string)
	// Offline 用户连接断开
	Offline(userId string)
}
