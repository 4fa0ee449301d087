// Package live pushes export notifications to runtimes that want to reload
// a track as soon as it is re-exported.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Room holds the subscribers of one track.
type Room struct {
	track   string
	clients map[string]*Client // clientID -> client
}

func NewRoom(track string) *Room {
	return &Room{
		track:   track,
		clients: make(map[string]*Client),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // track -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop ends Run and drops every client. Their write pumps exit; late
// sends from read pumps are discarded.
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.Track]
	if !ok {
		room = NewRoom(client.Track)
		h.rooms[client.Track] = room
	}
	room.clients[client.ClientID] = client
	count := len(room.clients)
	h.mu.Unlock()

	payload, _ := json.Marshal(WelcomePayload{ClientID: client.ClientID, Subscribers: count})
	client.Send(&Message{
		Type:     TypeWelcome,
		Track:    client.Track,
		ClientID: client.ClientID,
		Payload:  payload,
	})

	slog.Info("subscriber joined", "track", client.Track, "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.Track]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.close()

	if len(room.clients) == 0 {
		delete(h.rooms, client.Track)
	}
	h.mu.Unlock()

	slog.Info("subscriber left", "track", client.Track, "client", client.ClientID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for track, room := range h.rooms {
		for _, c := range room.clients {
			c.close()
		}
		delete(h.rooms, track)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePing:
		sender.Send(&Message{Type: TypePong, Track: sender.Track, Payload: json.RawMessage(`{}`)})
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
	}
}

// Subscribers returns the number of clients watching a track.
func (h *Hub) Subscribers(track string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[track]
	if !ok {
		return 0
	}
	return len(room.clients)
}

// PublishExport notifies every subscriber of the payload's track.
func (h *Hub) PublishExport(p ExportCompletePayload) {
	payload, err := json.Marshal(p)
	if err != nil {
		slog.Error("marshal export notification", "error", err)
		return
	}
	h.broadcastToRoom(p.Track, &Message{
		Type:    TypeExportComplete,
		Track:   p.Track,
		Payload: payload,
	})
}

func (h *Hub) broadcastToRoom(track string, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[track]
	if !ok {
		return
	}
	for _, c := range room.clients {
		c.Send(msg)
	}
}
