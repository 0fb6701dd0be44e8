package connectionhub

import (
	wsmodels "recruitment-backend/models/ws"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	sent   []any
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, v)
	return nil
}

func (f *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if messageType == websocket.CloseMessage {
		f.closed = true
	}
	return nil
}

func (f *fakeConn) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHub(t *testing.T) {
	t.Run("message reaches connected user only", func(t *testing.T) {
		hub := NewInstance()
		conn := &fakeConn{}
		hub.AddClient("u1", conn)
		require.True(t, hub.IsConnected("u1"))
		require.False(t, hub.IsConnected("u2"))

		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Code: "job-closed", Msg: "closed"})
		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u2", Code: "job-closed", Msg: "closed"})
		require.Eventually(t, func() bool { return conn.sentCount() == 1 }, time.Second, 5*time.Millisecond)
	})
	t.Run("reconnect replaces the session and old disconnect keeps the new one", func(t *testing.T) {
		hub := NewInstance()
		oldConn := &fakeConn{}
		newConn := &fakeConn{}
		hub.AddClient("u1", oldConn)
		hub.AddClient("u1", newConn)
		require.Eventually(t, oldConn.isClosed, time.Second, 5*time.Millisecond)

		hub.DeleteClient("u1", oldConn)
		require.True(t, hub.IsConnected("u1"))

		hub.DeleteClient("u1", newConn)
		require.False(t, hub.IsConnected("u1"))
	})
	t.Run("concurrent senders", func(t *testing.T) {
		hub := NewInstance()
		conn := &fakeConn{}
		hub.AddClient("u1", conn)
		wg := sync.WaitGroup{}
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Code: "x"})
			}()
		}
		wg.Wait()
		require.Eventually(t, func() bool { return conn.sentCount() == 8 }, time.Second, 5*time.Millisecond)
	})
}
