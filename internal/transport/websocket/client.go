package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
)

const writeWait = 10 * time.Second

// client wraps one socket. conn.WriteJSON is not safe for concurrent use,
// so every write takes writeMu.
type client struct {
	conn    *websocket.Conn
	gameID  string
	writeMu sync.Mutex
}

func (c *client) send(message ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ConnectionManager tracks the sockets watching each game and relays game
// events to them. It implements game.EventPublisher.
type ConnectionManager struct {
	clients map[string]map[*client]struct{} // gameID → clients
	mu      sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]map[*client]struct{}),
	}
}

func (cm *ConnectionManager) add(c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	set, ok := cm.clients[c.gameID]
	if !ok {
		set = make(map[*client]struct{})
		cm.clients[c.gameID] = set
	}
	set[c] = struct{}{}
}

func (cm *ConnectionManager) remove(c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if set, ok := cm.clients[c.gameID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(cm.clients, c.gameID)
		}
	}
	c.conn.Close()
}

func (cm *ConnectionManager) snapshot(gameID string) []*client {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	set := cm.clients[gameID]
	out := make([]*client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Watchers returns how many sockets are attached to gameID.
func (cm *ConnectionManager) Watchers(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients[gameID])
}

// Publish sends the event to every socket watching the game. A socket that
// fails to write is dropped; the error is not returned to the game.
func (cm *ConnectionManager) Publish(_ context.Context, ev domain.GameEvent) error {
	msg := eventMessage(ev)
	for _, c := range cm.snapshot(ev.GameID) {
		if err := c.send(msg); err != nil {
			log.Printf("[WS] Dropping watcher of game %s: %v", ev.GameID, err)
			cm.remove(c)
		}
	}

	if ev.Type == domain.EventGameRemoved {
		for _, c := range cm.snapshot(ev.GameID) {
			cm.remove(c)
		}
	}
	return nil
}

// CloseAll closes every socket, used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for gameID, set := range cm.clients {
		for c := range set {
			c.conn.Close()
		}
		delete(cm.clients, gameID)
	}
}
