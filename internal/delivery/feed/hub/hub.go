// Package hub tracks websocket clients of the realtime notification feed and
// routes row-change events to them.
package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"logbid/config"
	"logbid/internal/domain/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Default idle window before a silent client is dropped.
	defaultIdleTimeout = 60 * time.Second

	// Maximum inbound message size; clients only ever send pongs.
	maxMessageSize = 512
)

// client is one websocket connection bound to an authenticated user.
type client struct {
	userID   uuid.UUID
	marketID int64
	conn     *websocket.Conn
	send     chan []byte
}

// Hub tracks connected feed clients and routes realtime events to them.
// Events addressed to a user go to that user's connections only; events
// without a user broadcast to every client in the event's market.
type Hub struct {
	mu          sync.RWMutex
	clients     map[*client]struct{}
	idleTimeout time.Duration
	logger      *slog.Logger
}

// NewHub is the constructor for Hub.
func NewHub(cfg *config.Config, logger *slog.Logger) *Hub {
	idleTimeout := defaultIdleTimeout
	if cfg.Feed != nil && cfg.Feed.ClientIdleTimeout > 0 {
		idleTimeout = cfg.Feed.ClientIdleTimeout
	}

	return &Hub{
		clients:     make(map[*client]struct{}),
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// Register adopts an upgraded connection and starts its pumps. The connection
// is owned by the hub from here on.
func (h *Hub) Register(conn *websocket.Conn, userID uuid.UUID, marketID int64) {
	c := &client{
		userID:   userID,
		marketID: marketID,
		conn:     conn,
		send:     make(chan []byte, 16),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("Feed client connected",
		slog.String("userID", userID.String()), slog.Int64("marketID", marketID))

	go h.writePump(c)
	go h.readPump(c)
}

// Dispatch routes one realtime event to the matching clients. Slow clients
// whose buffers are full miss the event; the record is durable server-side
// and shows up on the next fetch.
func (h *Hub) Dispatch(event *service.RealtimeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("Failed to encode realtime event", "stream", event.Stream, "error", err)

		return
	}

	var target uuid.UUID
	if event.UserID != "" {
		parsed, err := uuid.Parse(event.UserID)
		if err != nil {
			h.logger.Warn("Dropping event with malformed user id", "userID", event.UserID)

			return
		}
		target = parsed
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if target != uuid.Nil {
			if c.userID != target {
				continue
			}
		} else if event.MarketID != 0 && c.marketID != event.MarketID {
			continue
		}

		select {
		case c.send <- payload:
		default:
			h.logger.Warn("Feed client buffer full, dropping event",
				slog.String("userID", c.userID.String()), slog.String("stream", event.Stream))
		}
	}
}

// Close drops every connected client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	_ = c.conn.Close()
}

func (h *Hub) writePump(c *client) {
	pingPeriod := h.idleTimeout * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.idleTimeout))
	})

	// Inbound traffic is discarded; the feed is one-directional.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
