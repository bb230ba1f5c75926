package websocket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"agenticads/models"
	"agenticads/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// writeWait bounds how long one stalled dashboard can hold up the broadcast
// loop before it gets dropped.
const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is one live-feed message pushed to connected admin dashboards.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one connected dashboard.
type Client struct {
	ID   string
	Conn *websocket.Conn
}

// Hub fans out cache events to every connected admin dashboard. It
// implements services.DataListener.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// HistoryAppended broadcasts a newly persisted generation history entry.
func (h *Hub) HistoryAppended(entry models.GenerationHistory) {
	h.broadcast(Event{Type: "generation_history", Payload: entry})
}

// FeedbackAppended broadcasts a newly persisted feedback item.
func (h *Hub) FeedbackAppended(item models.FeedbackItem) {
	h.broadcast(Event{Type: "feedback", Payload: item})
}

func (h *Hub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.Conn.WriteJSON(event); err != nil {
			log.Printf("Failed to push event to dashboard %s: %v", id, err)
			client.Conn.Close()
			delete(h.clients, id)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	if client, ok := h.clients[id]; ok {
		client.Conn.Close()
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

// ClientCount reports the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// DashboardFeedHandler upgrades an admin dashboard connection and keeps it
// registered until the peer goes away. The session token is passed as a
// query parameter since browsers cannot set headers on websocket dials.
func (h *Hub) DashboardFeedHandler(c *gin.Context) {
	token := c.Query("token")
	session := services.GetSessionService().Session()
	if token == "" || !session.Authenticated || token != session.Token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade dashboard connection: %v", err)
		return
	}

	client := &Client{ID: uuid.NewString(), Conn: conn}
	h.register(client)
	log.Printf("Dashboard connected: %s", client.ID)

	// Reads are only used to detect the peer closing.
	go func() {
		defer h.unregister(client.ID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
