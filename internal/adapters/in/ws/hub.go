// Package ws pushes new notifications to connected browsers over WebSocket.
// Each connection belongs to one authenticated actor and only receives the
// notifications that actor would see in its inbox.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

var ErrHubStopped = errors.New("notification hub is not running")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// Message is the JSON frame sent for each notification.
type Message struct {
	ID        kernel.UUID                `json:"id"`
	EventType notification.EventType     `json:"eventType"`
	Timestamp time.Time                  `json:"timestamp"`
	Actor     kernel.Actor               `json:"actor"`
	Entity    notification.EntityRef     `json:"entity"`
	Title     string                     `json:"title"`
	Message   string                     `json:"message"`
	Changes   []notification.FieldChange `json:"changes,omitempty"`
	Metadata  map[string]string          `json:"metadata,omitempty"`
}

type client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	actor        kernel.Actor
	supplierName string
}

// Hub tracks live connections. Run must be running for Publish and Serve
// to make progress.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan *notification.Notification
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan *notification.Notification, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws_hub"),
	}
}

// Run dispatches until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("client connected", "actor_id", c.actor.ID, "role", c.actor.Role.String())
		case c := <-h.unregister:
			h.drop(c)
		case n := <-h.broadcast:
			h.deliver(n)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Debug("client disconnected", "actor_id", c.actor.ID)
	}
}

func (h *Hub) deliver(n *notification.Notification) {
	payload, err := json.Marshal(newMessage(n))
	if err != nil {
		h.logger.Error("failed to encode notification", "notification_id", n.ID().String(), "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if !n.VisibleTo(c.actor, c.supplierName) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			// Slow reader; drop it.
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn("dropping slow client", "actor_id", c.actor.ID)
		}
	}
}

// Clients returns the number of live connections.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements ports.NotificationPublisher.
func (h *Hub) Publish(ctx context.Context, n *notification.Notification) error {
	select {
	case h.broadcast <- n:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Serve upgrades the request and attaches the connection to actor. The
// caller has already authenticated the request.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, actor kernel.Actor, supplierName string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{
		hub:          h,
		conn:         conn,
		send:         make(chan []byte, sendBuffer),
		actor:        actor,
		supplierName: supplierName,
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return ErrHubStopped
	}

	go c.writePump()
	go c.readPump()
	return nil
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// readPump only watches for the peer going away; clients never send data.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("unexpected close", "actor_id", c.actor.ID, "error", err)
			}
			return
		}
	}
}

func newMessage(n *notification.Notification) Message {
	return Message{
		ID:        n.ID(),
		EventType: n.EventType(),
		Timestamp: n.Timestamp(),
		Actor:     n.Actor(),
		Entity:    n.Entity(),
		Title:     n.Title(),
		Message:   n.Message(),
		Changes:   n.Changes(),
		Metadata:  n.Metadata(),
	}
}
