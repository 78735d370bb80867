package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/uid"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler builds the socket endpoint. originAllowed decides which
// browser origins may connect; requests without an Origin header always can.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, originAllowed func(string) bool) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || originAllowed(origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades /ws?gameId=<id> for an existing game.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if !uid.IsGameID(gameID) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if _, ok := h.SessionManager.GetSessionByGameID(gameID); !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	c := &client{conn: conn, gameID: gameID}
	h.ConnManager.add(c)
	log.Printf("[WS] Connection opened for game %s (%d watching)", gameID, h.ConnManager.Watchers(gameID))

	// Snapshot after registering so no event falls between the two.
	snap, err := h.SessionManager.GetSnapshot(gameID)
	if err != nil {
		c.send(errorMessage(gameID, err.Error(), "game_not_found"))
		h.ConnManager.remove(c)
		return
	}
	if err := c.send(stateMessage(snap)); err != nil {
		h.ConnManager.remove(c)
		return
	}

	h.handleConnection(r.Context(), c)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, c *client) {
	conn := c.conn
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.remove(c)
		log.Printf("[WS] Connection closed for game %s", c.gameID)
	}()

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.send(errorMessage(c.gameID, "Invalid message format", "bad_request"))
			continue
		}

		h.processMessage(ctx, c, msg)
	}
}

// processMessage routes client actions. Successful changes reach every
// watcher, this one included, through the ConnectionManager publisher;
// only failures are answered directly.
func (h *Handler) processMessage(ctx context.Context, c *client, msg ClientMessage) {
	switch msg.Type {
	case MsgStart:
		if _, err := h.SessionManager.RestartSession(ctx, c.gameID, msg.Player1Color, msg.Player2Color); err != nil {
			h.sendError(c, err)
		}

	case MsgDropPiece:
		if msg.Column == nil {
			c.send(errorMessage(c.gameID, "column is required", "bad_request"))
			return
		}
		if _, _, err := h.SessionManager.DropPiece(ctx, c.gameID, *msg.Column); err != nil {
			h.sendError(c, err)
		}

	case MsgSync:
		snap, err := h.SessionManager.GetSnapshot(c.gameID)
		if err != nil {
			h.sendError(c, err)
			return
		}
		c.send(stateMessage(snap))

	default:
		c.send(errorMessage(c.gameID, "Unknown message type", "bad_request"))
	}
}

func (h *Handler) sendError(c *client, err error) {
	code := "internal"
	var domainErr domain.Error
	switch {
	case errors.As(err, &domainErr):
		code = domainErr.Code()
	case errors.Is(err, game.ErrSessionNotFound):
		code = "game_not_found"
	}
	c.send(errorMessage(c.gameID, err.Error(), code))
}
