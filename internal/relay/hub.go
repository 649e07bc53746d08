package relay

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ecotrade/marketplace/internal/service"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Event is the wire envelope for both directions of the socket.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	ChatID   uint64 `json:"chat_id"`
	SenderID uint64 `json:"sender_id"`
	Content  string `json:"content"`
}

// Hub groups live connections into rooms keyed by chat id and fans
// persisted messages out to every member of the room.
type Hub struct {
	chats    service.ChatService
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[uint64]map[*client]struct{}
}

func NewHub(chats service.ChatService, allowedOrigins []string) *Hub {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Hub{
		chats: chats,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		rooms: make(map[uint64]map[*client]struct{}),
	}
}

// HandleWS upgrades the request and serves the connection until it closes.
func (h *Hub) HandleWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	cl := newClient(conn)
	log.Printf("relay: client connected: %s", conn.RemoteAddr())
	go cl.writeLoop()
	h.readLoop(cl)
	return nil
}

func (h *Hub) readLoop(cl *client) {
	defer func() {
		h.leaveAll(cl)
		cl.close()
		log.Printf("relay: client disconnected: %s", cl.conn.RemoteAddr())
	}()
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		var evt Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			cl.sendEvent("message_error", map[string]string{"message": "malformed event"})
			continue
		}
		switch evt.Event {
		case "join_chat":
			var chatID uint64
			if err := json.Unmarshal(evt.Data, &chatID); err != nil {
				cl.sendEvent("message_error", map[string]string{"message": "invalid chat id"})
				continue
			}
			h.join(chatID, cl)
			log.Printf("relay: client joined chat %d", chatID)
		case "send_message":
			var p sendMessagePayload
			if err := json.Unmarshal(evt.Data, &p); err != nil {
				cl.sendEvent("message_error", map[string]string{"message": "invalid message payload"})
				continue
			}
			msg, err := h.chats.SendMessage(context.Background(), p.ChatID, p.SenderID, p.Content)
			if err != nil {
				log.Printf("relay: send_message failed: %v", err)
				// only the sender hears about the failure
				cl.sendEvent("message_error", map[string]string{"message": "failed to send message"})
				continue
			}
			h.broadcast(p.ChatID, "receive_message", msg)
		}
	}
}

func (h *Hub) join(chatID uint64, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[chatID]
	if room == nil {
		room = make(map[*client]struct{})
		h.rooms[chatID] = room
	}
	room[cl] = struct{}{}
}

func (h *Hub) leaveAll(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for chatID, room := range h.rooms {
		delete(room, cl)
		if len(room) == 0 {
			delete(h.rooms, chatID)
		}
	}
}

func (h *Hub) broadcast(chatID uint64, event string, data interface{}) {
	h.mu.Lock()
	members := make([]*client, 0, len(h.rooms[chatID]))
	for cl := range h.rooms[chatID] {
		members = append(members, cl)
	}
	h.mu.Unlock()
	for _, cl := range members {
		cl.sendEvent(event, data)
	}
}
