// Package stream forwards a walk to WebSocket clients, which draw it.
package stream

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lukaszgryglicki/photonwalk/internal/logging"
	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
)

const (
	writeWait     = 2 * time.Second
	sendQueueSize = 256
)

// SafeWriter serializes writes to one connection.
type SafeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

func (w *SafeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return w.conn.WriteJSON(v)
}

func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}

// client is one connection with its own send queue, drained by a single writer.
type client struct {
	sw   *SafeWriter
	send chan Message
}

// Hub broadcasts segments and stats to every connected client.
// New clients first receive the star field. Broadcast never waits on the
// network: a client whose queue is full is dropped.
type Hub struct {
	upgrader  websocket.Upgrader
	log       *slog.Logger
	queueSize int

	mu      sync.Mutex
	clients map[*client]struct{}
	stars   []photonwalk.Point3
}

var (
	_ photonwalk.Recorder = (*Hub)(nil)
	_ photonwalk.Reporter = (*Hub)(nil)
)

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = logging.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:       log,
		queueSize: sendQueueSize,
		clients:   make(map[*client]struct{}),
	}
}

// SetStars replaces the star field sent to clients on connect.
func (h *Hub) SetStars(stars []photonwalk.Point3) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stars = stars
	h.broadcastLocked(Message{Type: TypeStars, Data: stars})
}

// ServeHTTP upgrades the request and keeps the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{sw: NewSafeWriter(conn), send: make(chan Message, h.queueSize)}

	// The stars go into the queue before the client becomes visible to Broadcast.
	h.mu.Lock()
	c.send <- Message{Type: TypeStars, Data: h.stars}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("client connected", "remote", r.RemoteAddr, "clients", n)

	go h.writeLoop(c)
	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}

// writeLoop sends queued messages until the queue is closed, then closes the connection.
func (h *Hub) writeLoop(c *client) {
	defer func() { _ = c.sw.Close() }()
	for msg := range c.send {
		if err := c.sw.WriteJSON(msg); err != nil {
			h.log.Debug("write failed", "type", msg.Type, "error", err)
			h.drop(c)
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.log.Info("client disconnected", "clients", len(h.clients))
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(msg)
}

func (h *Hub) broadcastLocked(msg Message) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("client too slow, dropping", "type", msg.Type)
			h.dropLocked(c)
		}
	}
}

func (h *Hub) Record(s photonwalk.Segment) { h.Broadcast(Message{Type: TypeSegment, Data: s}) }

func (h *Hub) Report(st photonwalk.Stats) { h.Broadcast(Message{Type: TypeStats, Data: st}) }

// Reset tells clients to clear the previous trajectory.
func (h *Hub) Reset() { h.Broadcast(Message{Type: TypeReset}) }

// Close disconnects all clients once their queued messages are written.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.dropLocked(c)
	}
}
