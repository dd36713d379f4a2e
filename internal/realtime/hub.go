package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"disaster-watch/internal/domain"
)

const (
	writeTimeout  = 5 * time.Second
	sendQueueSize = 16
)

// monitoringEvent is pushed to every client on connect. Placeholder until a
// real monitoring feed exists.
var monitoringEvent = domain.Event{Status: "monitoring", Location: "California"}

// Hub owns the set of connected event-channel clients and fans updates out
// to them. Persistence and routing stay out; this is a push channel only.
type Hub struct {
	logger   *logrus.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan domain.Event
}

func NewHub(logger *logrus.Logger, allowedOrigin string) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "" || origin == allowedOrigin
			},
		},
		clients: make(map[string]*client),
	}
}

// Serve upgrades the request and pumps events to the client until it
// disconnects. The initial monitoring event is queued immediately.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("ws upgrade: %v", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan domain.Event, sendQueueSize),
	}
	// queue the connect event before the client is visible to Broadcast
	// or Shutdown; the buffered channel cannot block here
	c.send <- monitoringEvent
	h.register(c)
	h.logger.Infof("client %s connected", c.id)

	go h.writeLoop(c)
	h.readLoop(c)
}

// Broadcast queues an event for every connected client. Clients that cannot
// keep up are skipped rather than blocking the caller.
func (h *Hub) Broadcast(event domain.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- event:
		default:
			h.logger.Warnf("client %s send queue full, dropping event", c.id)
		}
	}
}

// Shutdown closes every client connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		close(c.send)
		delete(h.clients, c.id)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		close(c.send)
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for event := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(event); err != nil {
			h.logger.Warnf("client %s write: %v", c.id, err)
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.logger.Infof("client %s disconnected", c.id)
	}()
	for {
		// inbound messages are ignored; reading drives close detection
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
