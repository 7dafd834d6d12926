package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"MacroDash/internal/domain/models"
	xlogger "MacroDash/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds incoming frames; clients only ever pong.
	maxMessageSize = 512

	// sendBufferSize is the channel buffer for outgoing messages per client.
	sendBufferSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The page is served same-origin; cross-origin read access is fine
		// for public market data.
		return true
	},
}

// envelope is the frame pushed to clients.
type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client represents a single WebSocket connection.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub manages connected WebSocket clients and pushes each refreshed
// dashboard view model to all of them. New clients immediately receive the
// last published dashboard so the page renders without waiting for the
// next refresh.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu   sync.RWMutex
	last []byte

	logger *xlogger.Logger
}

// NewHub creates the hub. Run must be started in a goroutine before
// handling connections.
func NewHub(logger *xlogger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Publish pushes a refreshed dashboard to every connected client and
// retains it for late joiners. Safe to call from the scheduler goroutine.
func (h *Hub) Publish(d *models.Dashboard) {
	data, err := json.Marshal(envelope{Type: "dashboard", Data: d})
	if err != nil {
		h.logger.Error("ws: marshal dashboard", xlogger.Error(err))
		return
	}

	h.mu.Lock()
	h.last = data
	h.mu.Unlock()

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("ws: broadcast queue full, dropping update")
	}
}

// Run is the hub's event loop. It exits when ctx is cancelled, closing all
// client connections.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Closing done unblocks pumps still trying to register or
			// unregister after the loop stops receiving.
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws: client connected", xlogger.Int("total_clients", n))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("ws: client disconnected", xlogger.Int("total_clients", n))

		case data := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					h.logger.Warn("ws: dropping update for slow client")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// RegisterRoutes mounts the upgrade endpoint.
func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", h.handle)
}

func (h *Hub) handle(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("ws: upgrade failed", xlogger.Error(err))
		return nil
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.RLock()
	last := h.last
	h.mu.RUnlock()

	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return nil
	}
	if last != nil {
		select {
		case cl.send <- last:
		default:
		}
	}

	go cl.writePump()
	go cl.readPump()
	return nil
}

// drop detaches a client without blocking once the hub has shut down.
func (h *Hub) drop(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// readPump drains the connection so pings/pongs and close frames are
// processed. Client frames carry no commands.
func (c *client) readPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("ws: unexpected close", xlogger.Error(err))
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
