package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/greenvalley/farmtodoor-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type subscription struct {
	conn     *websocket.Conn
	farmerID uint
}

// NotifyHub fans stored notifications out to connected farmer
// dashboards. Connections are grouped by farmer id; a farmer with no
// open connection simply reads the notification feed later.
type NotifyHub struct {
	clients    map[uint]map[*websocket.Conn]bool
	events     chan models.Notification
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

func NewNotifyHub() *NotifyHub {
	return &NotifyHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		events:     make(chan models.Notification, 32),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

func (h *NotifyHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.farmerID] == nil {
				h.clients[sub.farmerID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.farmerID][sub.conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.farmerID][sub.conn]; ok {
				delete(h.clients[sub.farmerID], sub.conn)
				sub.conn.Close()
			}
			h.mu.Unlock()

		case n := <-h.events:
			h.mu.Lock()
			for conn := range h.clients[n.FarmerID] {
				if err := conn.WriteJSON(n); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[n.FarmerID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish satisfies services.NotificationPublisher. It never blocks;
// when the event buffer is full the live push is skipped and the
// notification stays available in the stored feed.
func (h *NotifyHub) Publish(n models.Notification) {
	if n.FarmerID == 0 {
		return
	}
	select {
	case h.events <- n:
	default:
		log.Println("notify hub event buffer full, skipping live push")
	}
}

// Serve upgrades an authenticated farmer connection and keeps it
// registered until the peer goes away.
func (h *NotifyHub) Serve(ctx *gin.Context) {
	farmerID := ctx.GetUint("userId")
	if farmerID == 0 {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{conn: conn, farmerID: farmerID}
	h.register <- sub

	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
