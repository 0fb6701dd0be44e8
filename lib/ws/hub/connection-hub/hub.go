package connectionhub

import (
	wsmodels "recruitment-backend/models/ws"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID string, conn Conn)
	DeleteClient(userID string, conn Conn)
	SendMessage(msg wsmodels.ServerMessage)
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return &impl{
		clients: map[string]*clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession //map[userID]
}

func (i *impl) DeleteClient(userID string, conn Conn) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	// a reconnect may have replaced the session already
	if !ok || sess.conn != conn {
		i.mu.Unlock()
		return
	}
	delete(i.clients, userID)
	i.mu.Unlock()
	sess.stop()
}

func (i *impl) AddClient(userID string, conn Conn) {
	sess := newSession(conn)
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = sess
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.RUnlock()
	if !ok {
		return
	}
	if !sess.enqueue(msg) {
		log.WithField("user_id", msg.ToUserID).Warn("push dropped, session buffer is full")
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.clients[userID]
	return ok
}
