package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

type broadcastReq struct {
	matchID int64
	message models.WSMessage
}

// Hub maintains the set of active clients, grouped by the match they
// watch, and fans match events out to them.
type Hub struct {
	log        logger.Logger
	clients    map[int64]map[*Client]bool
	broadcast  chan broadcastReq
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// Client is a middleman between one websocket connection and the hub
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	matchID int64
	send    chan models.WSMessage
}

// New creates a new Hub instance with injected dependencies
func New(log logger.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[int64]map[*Client]bool),
		broadcast:  make(chan broadcastReq),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if h.clients[client.matchID] == nil {
				h.clients[client.matchID] = make(map[*Client]bool)
			}
			h.clients[client.matchID][client] = true
			total := len(h.clients[client.matchID])
			h.mutex.Unlock()
			h.log.Debug("Client connected", "match_id", client.matchID, "match_clients", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if group, ok := h.clients[client.matchID]; ok {
				if _, ok := group[client]; ok {
					delete(group, client)
					close(client.send)
					if len(group) == 0 {
						delete(h.clients, client.matchID)
					}
				}
			}
			h.mutex.Unlock()
			h.log.Debug("Client disconnected", "match_id", client.matchID)

		case req := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients[req.matchID] {
				select {
				case client.send <- req.message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastMessage sends a message to every client watching the given match
func (h *Hub) BroadcastMessage(matchID int64, msgType string, payload interface{}) {
	h.broadcast <- broadcastReq{
		matchID: matchID,
		message: models.WSMessage{Type: msgType, Payload: payload},
	}
}

// NotifyDraftChanged implements services.Notifier
func (h *Hub) NotifyDraftChanged(matchID int64) {
	h.BroadcastMessage(matchID, "draft_updated", map[string]interface{}{
		"match_id": matchID,
	})
}

// NotifyPageChanged implements services.Notifier
func (h *Hub) NotifyPageChanged(matchID int64) {
	h.BroadcastMessage(matchID, "page_refresh", map[string]interface{}{
		"match_id": matchID,
	})
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}

		// Observers do not drive state over the socket; log and ignore.
		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.hub.log.Debug("Received message", "type", msg.Type)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			msgBytes, _ := json.Marshal(message)
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades a request into a websocket subscription for one match
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request, matchID int64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		matchID: matchID,
		send:    make(chan models.WSMessage, 256),
	}
	h.register <- client

	// Allow collection of memory referenced by the caller by doing all work in new goroutines
	go client.writePump()
	go client.readPump()
}
