package wsclient

import (
	"errors"
	"sync"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	frames    [][]byte
	deadlines int
}

func (f *fakeReader) ReadMessage() (int, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return 0, nil, &fastws.CloseError{Code: websocket.CloseNormalClosure}
	}
	frame := f.frames[0]
	f.frames = f.frames[1:]
	return websocket.TextMessage, frame, nil
}

func (f *fakeReader) SetReadDeadline(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadlines++
	return nil
}

func (f *fakeReader) SetPongHandler(h func(appData string) error) {}

func TestDispatchDrainsUntilClose(t *testing.T) {
	conn := &fakeReader{frames: [][]byte{[]byte("hello"), []byte("again")}}
	done := make(chan struct{})
	go func() {
		NewClient("u1", conn).Dispatch()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch did not return on close")
	}
	// initial deadline plus one per frame
	require.Equal(t, 3, conn.deadlines)
}

type brokenReader struct{ fakeReader }

func (b *brokenReader) ReadMessage() (int, []byte, error) {
	return 0, nil, errors.New("connection reset")
}

func TestDispatchStopsOnError(t *testing.T) {
	NewClient("u1", &brokenReader{}).Dispatch()
}

func TestDispatchNilConn(t *testing.T) {
	(&WsClient{}).Dispatch()
}
