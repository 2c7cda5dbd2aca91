package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingCommandHandler struct {
	received chan []byte
}

func (h *recordingCommandHandler) HandleCommand(data []byte) {
	h.received <- data
}

type recordingPresenceHandler struct {
	online  chan string
	offline chan string
}

func (h *recordingPresenceHandler) Online(userId string)  { h.online <- userId }
func (h *recordingPresenceHandler) Offline(userId string) { h.offline <- userId }

func waitFor[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for %s", what)
		panic("unreachable")
	}
}

func newStartedHub(t *testing.T) (*Hub, *recordingCommandHandler, *recordingPresenceHandler) {
	t.Helper()
	hub := NewHub()
	commandHandler := &recordingCommandHandler{received: make(chan []byte, 1)}
	presenceHandler := &recordingPresenceHandler{
		online:  make(chan string, 1),
		offline: make(chan string, 1),
	}
	hub.SetCommandHandler(commandHandler)
	hub.SetPresenceHandler(presenceHandler)
	go hub.Start()
	t.Cleanup(hub.Close)
	return hub, commandHandler, presenceHandler
}

func TestHubRegisterTriggersPresence(t *testing.T) {
	hub, _, presenceHandler := newStartedHub(t)

	client := &UserConn{Uuid: "U_TEST", SendBack: make(chan *MessageBack, 1)}
	hub.RegisterClient(client)
	require.Equal(t, "U_TEST", waitFor(t, presenceHandler.online, "online event"))
	require.Same(t, client, hub.GetClient("U_TEST"))

	hub.UnregisterClient(client)
	require.Equal(t, "U_TEST", waitFor(t, presenceHandler.offline, "offline event"))
	require.Nil(t, hub.GetClient("U_TEST"))
}

func TestHubPublishDispatchesToCommandHandler(t *testing.T) {
	hub, commandHandler, _ := newStartedHub(t)

	require.NoError(t, hub.Publish(context.Background(), []byte(`{"command":"message.send"}`)))
	require.JSONEq(t, `{"command":"message.send"}`, string(waitFor(t, commandHandler.received, "command")))
}

func TestHubPushToUser(t *testing.T) {
	hub, _, presenceHandler := newStartedHub(t)

	// 不在线时推送失败
	require.False(t, hub.PushToUser("U_TEST", []byte("payload"), 0))

	client := &UserConn{Uuid: "U_TEST", SendBack: make(chan *MessageBack, 1)}
	hub.RegisterClient(client)
	waitFor(t, presenceHandler.online, "online event")

	require.True(t, hub.PushToUser("U_TEST", []byte("payload"), 42))
	messageBack := waitFor(t, client.SendBack, "pushed message")
	require.Equal(t, []byte("payload"), messageBack.Message)
	require.EqualValues(t, 42, messageBack.Uuid)
}

func TestHubPushToUserDropsWhenBufferFull(t *testing.T) {
	hub, _, presenceHandler := newStartedHub(t)

	client := &UserConn{Uuid: "U_TEST", SendBack: make(chan *MessageBack, 1)}
	hub.RegisterClient(client)
	waitFor(t, presenceHandler.online, "online event")

	require.True(t, hub.PushToUser("U_TEST", []byte("first"), 0))
	// 缓冲已满：丢弃而不是阻塞
	require.False(t, hub.PushToUser("U_TEST", []byte("second"), 0))

	// 消费一条后恢复可推送
	waitFor(t, client.SendBack, "buffered message")
	require.True(t, hub.PushToUser("U_TEST", []byte("third"), 0))
}

func TestHubPushToClosedClientDoesNotPanic(t *testing.T) {
	hub, _, presenceHandler := newStartedHub(t)

	client := &UserConn{Uuid: "U_TEST", SendBack: make(chan *MessageBack, 1)}
	hub.RegisterClient(client)
	waitFor(t, presenceHandler.online, "online event")

	// 登出竞争窗口：通道已关闭但客户端尚未从映射表移除
	client.closeSend()
	require.NotPanics(t, func() {
		require.False(t, hub.PushToUser("U_TEST", []byte("payload"), 0))
	})

	// 正常走完注销流程，closeSend 幂等
	hub.UnregisterClient(client)
	require.Equal(t, "U_TEST", waitFor(t, presenceHandler.offline, "offline event"))
}
