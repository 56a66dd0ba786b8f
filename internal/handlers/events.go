package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by the CORS middleware
		return true
	},
}

// EventType tags the kind of snapshot pushed to subscribers.
type EventType string

const (
	EventSession EventType = "session"
	EventRooms   EventType = "rooms"
)

// Event is one state snapshot pushed after a mutation.
type Event struct {
	Type    EventType          `json:"type"`
	Session *SessionResponse   `json:"session,omitempty"`
	Rooms   *DirectoryResponse `json:"rooms,omitempty"`
}

// eventClient is one connected dashboard tab.
type eventClient struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// EventHub fans state snapshots out to every connected dashboard tab so an
// open page refreshes after someone else's mutation.
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]*eventClient
}

func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[string]*eventClient)}
}

// Broadcast pushes an event to all subscribers. Slow subscribers with a
// full buffer are skipped rather than blocking the mutation path.
func (h *EventHub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			log.Printf("Failed to send event to subscriber %s, buffer full", id)
		}
	}
}

// Subscribe upgrades the connection and streams events until the client
// goes away.
func (h *EventHub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &eventClient{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	log.Printf("Event subscriber %s connected", client.ID)

	go client.writePump()
	go client.readPump(h)
}

func (h *EventHub) remove(client *eventClient) {
	h.mu.Lock()
	delete(h.clients, client.ID)
	h.mu.Unlock()
}

// readPump only watches for the client closing; subscribers never send
// anything meaningful upstream.
func (c *eventClient) readPump(hub *EventHub) {
	defer func() {
		hub.remove(c)
		c.Conn.Close()
		log.Printf("Event subscriber %s disconnected", c.ID)
	}()

	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to write event: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
