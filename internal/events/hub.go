package events

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

// connection is one websocket client. It receives events only for the
// houses in its set.
type connection struct {
	principal string
	conn      *websocket.Conn
	send      chan []byte
	houses    map[string]bool
	canWatch  func(houseID string) bool
}

// Hub keeps the live websocket clients and implements Publisher.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

func NewHub(allowedOrigins []string, log *zap.Logger) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Hub{
		connections: make(map[*connection]struct{}),
		log:         log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
		},
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Clients reports how many clients are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.houses[e.HouseID] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("dropping event for slow client", zap.String("principal", c.principal))
		}
	}
	return nil
}

// Serve upgrades the request and blocks until the client disconnects.
// canWatch gates later subscribe commands; nil admits every house. The
// initial houses are expected to be checked by the caller.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, principal string, houses []string, canWatch func(houseID string) bool) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &connection{
		principal: principal,
		conn:      conn,
		send:      make(chan []byte, 64),
		houses:    make(map[string]bool),
		canWatch:  canWatch,
	}
	for _, id := range houses {
		if id != "" {
			c.houses[id] = true
		}
	}

	h.register(c)
	go h.writePump(c)
	h.readPump(c)
	return nil
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd struct {
			Type    string `json:"type"`
			HouseID string `json:"house_id"`
		}
		if err := json.Unmarshal(msg, &cmd); err != nil || cmd.HouseID == "" {
			continue
		}

		switch cmd.Type {
		case "subscribe":
			if c.canWatch != nil && !c.canWatch(cmd.HouseID) {
				h.log.Debug("subscribe refused", zap.String("principal", c.principal), zap.String("house_id", cmd.HouseID))
				continue
			}
			h.mu.Lock()
			c.houses[cmd.HouseID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.houses, cmd.HouseID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
