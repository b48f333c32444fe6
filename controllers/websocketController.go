package controllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-order-panel/models"
	"go-order-panel/panel"
)

const (
	clientWriteWait  = 5 * time.Second
	clientSendBuffer = 32
)

// uiClient is one connected panel UI. Messages queue on send and a single writer goroutine
// delivers them, so a slow client never holds up the hub.
type uiClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the connected UI clients and fans change events out to them.
type Hub struct {
	mu       sync.Mutex
	clients  map[*uiClient]bool
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHub accepts websocket clients from allowedOrigins. "*" allows any origin; requests
// without an Origin header (non-browser clients) are always accepted.
func NewHub(logger *zap.Logger, allowedOrigins []string) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Hub{
		clients: make(map[*uiClient]bool),
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

func (h *Hub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		client := &uiClient{conn: conn, send: make(chan []byte, clientSendBuffer)}
		h.mu.Lock()
		h.clients[client] = true
		h.mu.Unlock()
		h.logger.Debug("ui client connected", zap.String("remote", conn.RemoteAddr().String()))

		go h.writePump(client)

		// The UI only listens; reading keeps control frames flowing and detects disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(client)
				return
			}
		}
	}
}

func (h *Hub) writePump(client *uiClient) {
	defer client.conn.Close()
	for message := range client.send {
		if err := client.conn.SetWriteDeadline(time.Now().Add(clientWriteWait)); err != nil {
			h.remove(client)
			return
		}
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Warn("dropping ui client", zap.Error(err))
			h.remove(client)
			return
		}
	}
}

// remove unregisters client and ends its writer. Safe to call more than once.
func (h *Hub) remove(client *uiClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues message for every client without blocking. A client whose queue is full
// is dropped.
func (h *Hub) Broadcast(message models.Message) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to encode broadcast", zap.String("event", message.Event), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- messageBytes:
		default:
			h.logger.Warn("ui client is not keeping up, dropping it", zap.String("remote", client.conn.RemoteAddr().String()))
			delete(h.clients, client)
			close(client.send)
			client.conn.Close()
		}
	}
}

// broadcast publishes the view affected by a session change. Staff views are only sent to
// staff panels.
func (pc *PanelController) broadcast(kind panel.ChangeKind) {
	var payload interface{}
	switch kind {
	case panel.ChangeOrders, panel.ChangeDetail:
		if !pc.session.IsStaff() {
			return
		}
		payload = pc.session.OrdersView()
	case panel.ChangeDashboard, panel.ChangeBalance, panel.ChangeTreasury:
		if !pc.session.IsStaff() {
			return
		}
		payload = pc.session.DashboardView()
	default:
		payload = pc.session.PanelView()
	}

	message, err := models.NewMessage(string(kind), payload)
	if err != nil {
		pc.logger.Error("failed to encode change", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	pc.hub.Broadcast(message)
}
