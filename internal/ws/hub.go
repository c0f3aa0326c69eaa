package ws

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Role identifies which side of a ride an account is on.
type Role string

const (
	RoleRider   Role = "user"
	RoleCaptain Role = "captain"
)

// ErrNotConnected is returned by Send when the account has no live
// connection. Callers treat it as a diagnostic, never a failure.
var ErrNotConnected = errors.New("account has no live connection")

// Message is the envelope for every server-to-client event.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Conn is the subset of *websocket.Conn the hub needs. It exists so
// tests can observe pushed events without a network connection.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// client pairs an account with its current live connection.
type client struct {
	role Role
	conn Conn
}

// Hub is the live-connection registry: it maps an account ID to its
// current realtime connection and pushes named events to it. The hub is
// owned by the transport layer and injected into the notification
// dispatcher; it never reaches into ambient state.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Register associates an account with its live connection, overwriting
// any previous association for the same account.
func (h *Hub) Register(accountID string, role Role, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[accountID] = &client{role: role, conn: conn}
}

// Account identifies a registered account and its role.
type Account struct {
	ID   string
	Role Role
}

// Unregister removes the association from every account currently
// pointing at the given connection and returns the cleared accounts.
func (h *Hub) Unregister(conn Conn) []Account {
	h.mu.Lock()
	defer h.mu.Unlock()

	var cleared []Account
	for id, c := range h.clients {
		if c.conn == conn {
			delete(h.clients, id)
			cleared = append(cleared, Account{ID: id, Role: c.role})
		}
	}

	return cleared
}

// IsConnected reports whether the account has a live connection.
func (h *Hub) IsConnected(accountID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[accountID]
	return ok
}

// Send pushes a named event to the account's live connection. Delivery
// is at-most-once and best-effort: there is no queue and no retry. A
// missing connection returns ErrNotConnected.
func (h *Hub) Send(accountID, event string, data any) error {
	h.mu.RLock()
	c, ok := h.clients[accountID]
	h.mu.RUnlock()

	if !ok {
		return ErrNotConnected
	}

	return c.conn.WriteJSON(Message{Event: event, Data: data})
}

// DecodeData unmarshals a client event payload into v.
func DecodeData(raw json.RawMessage, v any) error {
	return json.Unmarshal(raw, v)
}

// Ensure the gorilla connection satisfies Conn.
var _ Conn = (*websocket.Conn)(nil)
