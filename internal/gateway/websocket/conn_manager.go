// Package websocket 实现实时消息网关
// conn_manager.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 UserConn 对象，管理读写协程 (Read/Write Loop)
// 3. 通过 MessageBroker 接口解耦命令投递逻辑
package websocket

import (
	"context"
	"net/http"
	"sync"

	dao "skillhive_server/internal/dao/mysql"
	"skillhive_server/internal/model"
	"skillhive_server/pkg/constants"
	"skillhive_server/pkg/enum/message/message_status_enum"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageBack 用于回传下行事件给前端
// Uuid 非零时表示这是一条推给接收者的新消息，写出成功后推进其状态
type MessageBack struct {
	Message []byte
	Uuid    int64
}

// UserConn 表示一个 WebSocket 客户端连接
type UserConn struct {
	Conn     *websocket.Conn
	Uuid     string
	SendBack chan *MessageBack // 给前端

	// closed 标记 SendBack 已关闭
	// 推送方和关闭方可能在不同协程，经 mu 串行化后不会向已关闭的通道发送
	mu     sync.Mutex
	closed bool
}

// trySend 非阻塞投递下行事件
// 通道已关闭或缓冲已满都返回 false，推送是尽力而为的
func (c *UserConn) trySend(messageBack *MessageBack) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.SendBack <- messageBack:
		return true
	default:
		return false
	}
}

// closeSend 关闭下行通道，幂等
// 由 Hub 在客户端从映射表移除后调用
func (c *UserConn) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.SendBack)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 允许跨域握手，前后端分离部署时前端端口与后端不同
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var ctx = context.Background()

// Read 从 WebSocket 读取命令并通过 Broker 发布
func (c *UserConn) Read() {
	zap.L().Info("ws read goroutine start")
	for {
		_, jsonMessage, err := c.Conn.ReadMessage()
		if err != nil {
			zap.L().Error(err.Error())
			// 读失败视为断线，走注销流程
			GlobalBroker.UnregisterClient(c)
			return
		}
		// 通过接口发布命令，不关心具体实现
		if err := GlobalBroker.Publish(ctx, jsonMessage); err != nil {
			zap.L().Error(err.Error())
		}
	}
}

// Write 从 SendBack 通道读取事件并发送给 WebSocket
func (c *UserConn) Write() {
	zap.L().Info("ws write goroutine start")
	for messageBack := range c.SendBack {
		err := c.Conn.WriteMessage(websocket.TextMessage, messageBack.Message)
		if err != nil {
			zap.L().Error(err.Error())
			return
		}
		// 新消息送达接收者，状态推进到 RECEIVED
		// 条件里带上状态机的合法前置状态，已读的消息不会被回退
		if messageBack.Uuid != 0 {
			if res := dao.GormDB.Model(&model.ChatMessage{}).
				Where("uuid = ? AND status IN ?", messageBack.Uuid,
					message_status_enum.Predecessors(message_status_enum.Received)).
				Update("status", message_status_enum.Received); res.Error != nil {
				zap.L().Error(res.Error.Error())
			}
		}
	}
}

// NewClientInit 当接受到前端有连接请求时，会调用该函数
func NewClientInit(c *gin.Context, clientId string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     clientId,
		SendBack: make(chan *MessageBack, constants.CHANNEL_SIZE),
	}
	// 通过接口注册websocket客户端
	GlobalBroker.RegisterClient(client)
	go client.Read()
	go client.Write()
	zap.L().Info("ws连接成功")
}

// ClientLogout 当接受到前端有登出消息时，会调用该函数
// SendBack 不在这里关闭：注销只是入队，Hub 确认移除后才关闭通道
func ClientLogout(clientId string) error {
	client := GlobalBroker.GetClient(clientId)
	if client != nil {
		GlobalBroker.UnregisterClient(client)
		if err := client.Conn.Close(); err != nil {
			zap.L().Error(err.Error())
			return err
		}
	}
	return nil
}
