// Package websocket 实现实时消息网关
// hub.go
// 核心职责：单机模式下的连接中枢
// 1. 维护在线用户连接 (sync.Map)
// 2. 消费上行命令并交给注入的 CommandHandler
// 3. 处理用户上线/下线事件并通知 PresenceHandler
// 4. 不依赖外部消息队列，适合小规模或开发环境
package websocket

import (
	"context"
	"fmt"
	"sync"

	"skillhive_server/pkg/constants"

	"go.uber.org/zap"
)

// Hub 定义了 WebSocket 服务的核心结构
type Hub struct {
	// Clients 存储所有在线客户端的映射表，Key 为 UserUUID，Value 为 *UserConn
	// 使用 sync.Map 实现并发安全，无需手动加锁
	Clients sync.Map
	// Transmit 命令转发通道，承接上行命令
	Transmit chan []byte
	// Login 客户端登录通道，当有新连接建立时写入此通道
	Login chan *UserConn
	// Logout 客户端登出通道，当连接断开时写入此通道
	Logout chan *UserConn

	// 注入字段，构造后由装配入口设置
	commandHandler  CommandHandler
	presenceHandler PresenceHandler
}

// NewHub 创建 Hub 实例
// CommandHandler 与 Hub 互相引用（Service 推送需要 Hub，Hub 分发需要 Service），
// 因此先构造 Hub，再通过 Set 方法注入
func NewHub() *Hub {
	return &Hub{
		Transmit: make(chan []byte, constants.CHANNEL_SIZE),
		Login:    make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:   make(chan *UserConn, constants.CHANNEL_SIZE),
	}
}

// SetCommandHandler 注入命令处理器
func (h *Hub) SetCommandHandler(handler CommandHandler) {
	h.commandHandler = handler
}

// SetPresenceHandler 注入在线状态处理器
func (h *Hub) SetPresenceHandler(handler PresenceHandler) {
	h.presenceHandler = handler
}

// Start 启动 Hub 主循环
// 1. 命令消费循环 (Transmit channel): 接收上行命令 -> 交给 CommandHandler
// 2. 客户端管理循环 (Login/Logout channels): 维护 Clients 映射表并通知在线状态变更
func (h *Hub) Start() {
	for {
		select {
		// 处理客户端登录事件
		case client, ok := <-h.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			// sync.Map 自动处理并发安全
			h.Clients.Store(client.Uuid, client)
			zap.L().Debug(fmt.Sprintf("用户%s连接成功", client.Uuid))
			if h.presenceHandler != nil {
				h.presenceHandler.Online(client.Uuid)
			}

		// 处理客户端登出事件
		case client, ok := <-h.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			h.Clients.Delete(client.Uuid)
			// 先移除再关通道，推送方经 trySend 的关闭标记保护
			client.closeSend()
			zap.L().Info(fmt.Sprintf("用户%s断开连接", client.Uuid))
			if h.presenceHandler != nil {
				h.presenceHandler.Offline(client.Uuid)
			}

		// 处理上行命令（核心消费循环）
		case data, ok := <-h.Transmit:
			if !ok {
				return
			}
			if h.commandHandler != nil {
				h.commandHandler.HandleCommand(data)
			}
		}
	}
}

// Close 关闭服务通道
func (h *Hub) Close() {
	close(h.Login)
	close(h.Logout)
	close(h.Transmit)
}

// GetClient 获取客户端
func (h *Hub) GetClient(userId string) *UserConn {
	value, ok := h.Clients.Load(userId)
	if !ok {
		return nil
	}
	return value.(*UserConn)
}

// Publish 实现 MessageBroker 接口：发布命令到 Channel
func (h *Hub) Publish(ctx context.Context, msg []byte) error {
	h.Transmit <- msg
	return nil
}

// RegisterClient 实现 MessageBroker 接口：注册客户端
func (h *Hub) RegisterClient(client *UserConn) {
	h.Login <- client
}

// UnregisterClient 实现 MessageBroker 接口：注销客户端
func (h *Hub) UnregisterClient(client *UserConn) {
	h.Logout <- client
}

// PushToUser 向指定用户推送下行事件
// 尽力而为：用户不在线、通道已关闭或缓冲已满都丢弃并返回 false，
// 绝不阻塞调用方（命令分发循环也会经过这里）
func (h *Hub) PushToUser(userId string, payload []byte, messageUuid int64) bool {
	value, ok := h.Clients.Load(userId)
	if !ok {
		return false
	}
	client := value.(*UserConn)
	if !client.trySend(&MessageBack{Message: payload, Uuid: messageUuid}) {
		zap.L().Warn("客户端发送缓冲已满或已关闭，丢弃推送", zap.String("user", userId))
		return false
	}
	return true
}

var _ MessageBroker = (*Hub)(nil)
