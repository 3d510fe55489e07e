// Package ws pushes domain events to the browsers of the users they concern.
package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"renthive-backend/internal/adapter/middleware"
	"renthive-backend/internal/domain/event"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func (c *client) close() { c.once.Do(func() { close(c.send) }) }

// Hub tracks live connections per user. One user may hold several (tabs, devices).
type Hub struct {
	logger   echo.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]map[*client]struct{}
}

// NewHub: allowed lists the origins that may open a socket; empty allows any.
func NewHub(logger echo.Logger, allowed []string) *Hub {
	h := &Hub{logger: logger, conns: make(map[string]map[*client]struct{})}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(allowed)}
	return h
}

// Handle upgrades an authenticated request. Mount it behind middleware.JWTAuth.
func (h *Hub) Handle(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
	}
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warnf("ws: upgrade for %s failed: %v", actor.UserID, err)
		return nil
	}

	cl := &client{userID: actor.UserID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(cl)
	h.logger.Infof("ws: %s connected", actor.UserID)

	go h.writeLoop(cl)
	go h.readLoop(cl)
	return nil
}

// Deliver sends e to every live connection of e.RecipientID. Slow connections that
// cannot keep up are dropped.
func (h *Hub) Deliver(e event.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		h.logger.Warnf("ws: encode %s: %v", e.Type, err)
		return
	}
	h.mu.RLock()
	var slow []*client
	for cl := range h.conns[e.RecipientID] {
		select {
		case cl.send <- payload:
		default:
			slow = append(slow, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range slow {
		h.logger.Warnf("ws: %s too slow, closing", cl.userID)
		h.remove(cl)
	}
}

// Connections reports how many sockets userID has open.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.conns
	h.conns = make(map[string]map[*client]struct{})
	h.mu.Unlock()
	for _, set := range all {
		for cl := range set {
			cl.close()
		}
	}
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[cl.userID]
	if !ok {
		set = make(map[*client]struct{})
		h.conns[cl.userID] = set
	}
	set[cl] = struct{}{}
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	if set, ok := h.conns[cl.userID]; ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(h.conns, cl.userID)
		}
	}
	h.mu.Unlock()
	cl.close()
}

func (h *Hub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(cl)
				return
			}
		case <-ticker.C:
			if err := cl.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.remove(cl)
				return
			}
		}
	}
}

// readLoop only keeps the deadline fresh; clients never send anything meaningful.
func (h *Hub) readLoop(cl *client) {
	defer func() {
		h.remove(cl)
		h.logger.Infof("ws: %s disconnected", cl.userID)
	}()
	cl.conn.SetReadLimit(4 << 10)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
		_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
