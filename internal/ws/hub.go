package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket connection with user context.
type Client struct {
	UserID uint
	Role   string
	Send   chan []byte
	room   *Room
	mu     sync.Mutex
	closed bool
}

// Close leaves the room before closing Send, so broadcasters no longer
// hold a reference to the channel by the time it closes.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.room != nil {
		c.room.Leave(c)
	}
	close(c.Send)
}

// Room is one live negotiation feed, keyed by request ID.
type Room struct {
	RequestID uint
	mu        sync.RWMutex
	clients   map[*Client]struct{}
}

func NewRoom(requestID uint) *Room {
	return &Room{
		RequestID: requestID,
		clients:   make(map[*Client]struct{}),
	}
}

func (r *Room) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.room = r
	r.clients[c] = struct{}{}
}

func (r *Room) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends the payload to everyone in the room except the
// sender. Slow consumers are skipped rather than blocked on.
func (r *Room) Broadcast(from *Client, payload interface{}) {
	data, _ := json.Marshal(payload)
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// Hub holds all negotiation rooms by request ID.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]*Room)}
}

func (h *Hub) GetOrCreateRoom(requestID uint) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[requestID]; ok {
		return r
	}
	r := NewRoom(requestID)
	h.rooms[requestID] = r
	return r
}

func (h *Hub) GetRoom(requestID uint) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[requestID]
}

func (h *Hub) RemoveRoom(requestID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, requestID)
}

// NotifyRoom pushes a payload to everyone in the request's room, if it
// exists. Used after REST mutations so open feeds see new messages.
func (h *Hub) NotifyRoom(requestID uint, payload interface{}) {
	if room := h.GetRoom(requestID); room != nil {
		room.Broadcast(nil, payload)
	}
}
