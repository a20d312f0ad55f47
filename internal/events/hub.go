// Package events fans out "something changed, re-fetch it" notifications to
// connected SSE clients. Events carry identifiers only; consumers read the
// current state from the API.
package events

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

type Type string

const (
	MatchChanged      Type = "match_changed"
	MatchRemoved      Type = "match_removed"
	TeamChanged       Type = "team_changed"
	TeamRemoved       Type = "team_removed"
	InvitationChanged Type = "invitation_changed"
)

type Event struct {
	Type Type      `json:"type"`
	ID   uuid.UUID `json:"id"`
	By   uuid.UUID `json:"by"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

// message is an event plus its audience. No recipients means everyone.
type message struct {
	recipients map[uuid.UUID]bool
	event      Event
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *message
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *message, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients {
				if msg.recipients != nil && !msg.recipients[client.UserID] {
					continue
				}
				select {
				case client.Send <- data:
				default:
					// Slow client; it re-fetches on reconnect
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish notifies every connected client.
func (h *Hub) Publish(t Type, id, by uuid.UUID) {
	h.broadcast <- &message{event: Event{Type: t, ID: id, By: by}}
}

// PublishTo notifies only the clients of the given users.
func (h *Hub) PublishTo(t Type, id, by uuid.UUID, userIDs ...uuid.UUID) {
	recipients := make(map[uuid.UUID]bool, len(userIDs))
	for _, u := range userIDs {
		recipients[u] = true
	}
	h.broadcast <- &message{recipients: recipients, event: Event{Type: t, ID: id, By: by}}
}
