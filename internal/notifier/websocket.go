package notifier

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 2 * time.Second

var errConnClosed = errors.New("connection is closed")

// wsConn adapts a gorilla websocket connection to the registry's Conn
// interface. Writes are serialized through a mutex and bounded by a write
// deadline so one slow client cannot stall a mutation request.
type wsConn struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func (c *wsConn) Send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(event)
}

func (c *wsConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *wsConn) markClosed() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	_ = c.conn.Close()
}

// Handler upgrades authenticated HTTP requests to websocket connections
// and keeps the registry in sync with connection lifetime.
type Handler struct {
	registry *Registry
	upgrader websocket.Upgrader
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleConnection registers the connection under the authenticated user
// id and immediately confirms the channel with CONNECTION_ESTABLISHED.
// The read loop exists only to detect disconnects; the channel is
// server-push, client frames are discarded.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed for user %s: %v", userID, err)
		return
	}

	wc := &wsConn{conn: conn}
	h.registry.Register(userID, wc)

	if err := wc.Send(Event{
		Type:    EventConnectionEstablished,
		Payload: map[string]string{"user_id": userID},
	}); err != nil {
		log.Printf("Could not confirm connection for user %s: %v", userID, err)
	}

	go func() {
		defer func() {
			wc.markClosed()
			h.registry.Unregister(userID, wc)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
