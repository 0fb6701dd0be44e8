package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn is the write side of a websocket connection.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const (
	sendBufferSize = 16
	pingPeriod     = 30 * time.Second
)

type clientSession struct {
	conn Conn

	// Outbound messages, buffered.
	sendCh chan any
	ctx    context.Context
	stop   func()
}

func newSession(conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		conn:   conn,
		sendCh: make(chan any, sendBufferSize),
		ctx:    ctx,
		stop:   cancelFn,
	}
	go sess.startSend()
	return sess
}

func (s *clientSession) enqueue(msg any) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.sendCh <- msg:
		return true
	default:
		return false
	}
}

func (s *clientSession) startSend() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithError(err).Error("failed to send push message")
			}
		case <-ticker.C:
			// keeps the client read deadline alive
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				log.WithError(err).Debug("failed to ping ws client")
			}
		}
	}
}

func (s *clientSession) close() {
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("cant close")
	}
}
