package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/astview/foundation/core/error"
	"github.com/msto63/astview/pkg/core/logging"
)

const (
	readTimeout  = 120 * time.Second
	writeTimeout = 10 * time.Second
)

// The debug page is served to local browsers only
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage represents a message sent by the page
type WSMessage struct {
	Type    string          `json:"type"` // "ping", "render"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse represents a message pushed to the page
type WSResponse struct {
	Type    string      `json:"type"` // "fragment", "pong", "error"
	Payload interface{} `json:"payload"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResponse(err error) WSResponse {
	return WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    string(mdwerror.GetCode(err)),
			Message: err.Error(),
		},
	}
}

// client is one connected page
type client struct {
	id     string
	conn   *websocket.Conn
	logger *logging.Logger
	mu     sync.Mutex
}

func (c *client) send(resp WSResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(resp); err != nil {
		c.logger.Warn("WebSocket send error", "error", err.Error())
	}
}

// hub tracks connected clients
type hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  *logging.Logger
}

func newHub(logger *logging.Logger) *hub {
	return &hub{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) snapshot() []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *hub) broadcast(resp WSResponse) {
	clients := h.snapshot()
	h.logger.Debug("Broadcasting", "type", resp.Type, "clients", len(clients))
	for _, c := range clients {
		c.send(resp)
	}
}

func (h *hub) closeAll() {
	for _, c := range h.snapshot() {
		c.mu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		c.conn.Close()
	}
}

// handleSocket upgrades the connection and serves one client
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", "error", err.Error())
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	c := &client{id: id, conn: conn, logger: s.logger.WithRequestID(id)}
	s.hub.add(c)
	defer s.hub.remove(c)

	c.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WebSocket read error", "error", err.Error())
			} else {
				c.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case "ping":
			c.send(WSResponse{Type: "pong"})
		case "render":
			fragment, err := s.fragment(c.logger)
			if err != nil {
				c.send(errorResponse(err))
				continue
			}
			c.send(WSResponse{Type: "fragment", Payload: fragment})
		default:
			c.send(WSResponse{
				Type: "error",
				Payload: WSErrorPayload{
					Code:    string(mdwerror.CodeInvalidInput),
					Message: "unknown message type: " + msg.Type,
				},
			})
		}
	}
}
