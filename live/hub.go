package live

import (
	"log"
	"net/http"
	"sync"

	"savorly/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Event is what connected clients receive on the activity feed.
type Event struct {
	Event      string `json:"event"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	By         string `json:"by,omitempty"`
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Hub fans domain events out to every connected websocket client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
	events  chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		events:  make(chan Event, 64),
	}
}

func (h *Hub) Run() {
	for ev := range h.events {
		h.broadcast(ev)
	}
}

// Publish queues an event for broadcast. Slow consumers never block the
// request path; if the queue is full the event is dropped.
func (h *Hub) Publish(eventName string, content mq.Index) {
	ev := Event{
		Event:      eventName,
		EntityType: content.EntityType,
		EntityID:   content.EntityID,
		By:         content.By,
	}
	select {
	case h.events <- ev:
	default:
	}
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(ev); err != nil {
			log.Println("ws write:", err)
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// WebSocketHandler upgrades the connection and keeps it registered until the
// client goes away. The feed is one-way; inbound frames are discarded.
func WebSocketHandler(h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("ws upgrade:", err)
			return
		}
		h.register(conn)
		defer h.unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
