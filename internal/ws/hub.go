package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the envelope pushed to every connected client.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	At      int64       `json:"at"`
}

const (
	TypeStockUpdate  = "stock_update"
	TypeNotification = "notification"
	TypeDataImport   = "data_import"
)

type Hub struct {
	Clients    map[*websocket.Conn]uuid.UUID
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	done       chan struct{}
	stopOnce   sync.Once
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]uuid.UUID),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			id := uuid.New()
			h.mutex.Lock()
			h.Clients[conn] = id
			h.mutex.Unlock()
			h.logger.Info("ws client connected", zap.String("client_id", id.String()))

		case conn := <-h.unregister:
			h.mutex.Lock()
			if id, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
				h.logger.Info("ws client disconnected", zap.String("client_id", id.String()))
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn, id := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Warn("ws write failed, dropping client", zap.String("client_id", id.String()), zap.Error(err))
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()

		case <-h.done:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Register hands conn to Run. It reports false once the hub is stopped.
func (h *Hub) Register(conn *websocket.Conn) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister drops conn. After Stop it returns at once; Run has already
// closed every client.
func (h *Hub) Unregister(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Stop ends Run and closes every client connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Publish broadcasts ev without blocking the caller. A nil hub drops events.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	if ev.At == 0 {
		ev.At = time.Now().UnixMilli()
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("ws event marshal failed", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	go func() {
		select {
		case h.Broadcast <- msg:
		case <-h.done:
		}
	}()
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}
