package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/quizclash/quizclash/go/internal/game/events"
	"github.com/rs/zerolog/log"
)

// ConnectionManager owns every live WebSocket connection and feeds
// inbound client messages to the game handler. Room fan-out itself lives
// in the sessions; connections are plain subscriber handles.
type ConnectionManager struct {
	handler GameHandler

	mu    sync.RWMutex
	conns map[string]*Connection

	upgrader websocket.Upgrader
	config   ConnectionConfig
}

// Connection represents a WebSocket connection to a client. It
// implements session.Subscriber.
type Connection struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	manager *ConnectionManager

	// mu guards closed. Sessions keep broadcasting to this subscriber
	// until the disconnect propagates to them, so Send must outlive the
	// pumps without touching a closed channel.
	mu     sync.Mutex
	closed bool

	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for WebSocket connections.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewConnectionManager creates a new WebSocket connection manager.
func NewConnectionManager(handler GameHandler, config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		handler: handler,
		conns:   make(map[string]*Connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
	}
}

// UpgradeConnection upgrades an HTTP request to a WebSocket connection
// and starts its read/write pumps.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		id:          uuid.New().String(),
		conn:        conn,
		send:        make(chan []byte, 256),
		manager:     cm,
		ConnectedAt: time.Now(),
	}

	cm.mu.Lock()
	cm.conns[connection.id] = connection
	cm.mu.Unlock()

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("conn_id", connection.id).
		Str("remote_addr", r.RemoteAddr).
		Msg("websocket connection established")
	return nil
}

// ConnectionCount returns the number of live connections.
func (cm *ConnectionManager) ConnectionCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.conns)
}

// unregister drops a connection and reconciles the disconnect against
// every live session.
func (cm *ConnectionManager) unregister(c *Connection) {
	cm.mu.Lock()
	_, ok := cm.conns[c.id]
	if ok {
		delete(cm.conns, c.id)
	}
	cm.mu.Unlock()
	if !ok {
		return
	}

	// Mark the connection closed before closing the send channel:
	// sessions broadcast to this subscriber until Disconnect below
	// removes it, and those late sends must be dropped, not panic.
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	close(c.send)

	cm.handler.Disconnect(c.id)

	log.Info().Str("conn_id", c.id).Msg("websocket connection closed")
}

// ID returns the transient connection identity.
func (c *Connection) ID() string { return c.id }

// Send queues an event for delivery. Slow consumers get dropped rather
// than stalling the session that broadcast the event, and events racing
// a disconnect are silently discarded.
func (c *Connection) Send(ev events.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("conn_id", c.id).Msg("failed to marshal event")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Warn().Str("conn_id", c.id).Msg("send buffer full, closing connection")
		c.conn.Close()
	}
}

// writePump handles sending messages to the WebSocket connection.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.manager.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("conn_id", c.id).Msg("failed to write message")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.manager.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads client messages and dispatches them to the game
// handler. Returning unregisters the connection, which triggers
// disconnect reconciliation.
func (c *Connection) readPump() {
	defer func() {
		c.manager.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.manager.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.manager.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.manager.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("conn_id", c.id).Msg("unexpected websocket close")
			}
			break
		}

		c.handleClientMessage(context.Background(), message)
		c.conn.SetReadDeadline(time.Now().Add(c.manager.config.ReadTimeout))
	}
}
