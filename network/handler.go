package network

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"coinrush/protocol"
	"coinrush/room"
)

// Handler upgrades HTTP requests to game sessions.
type Handler struct {
	rooms    *room.Manager
	codec    protocol.Codec // used when the client negotiates no subprotocol
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(rooms *room.Manager, codec protocol.Codec, logger *log.Logger) *Handler {
	if codec == nil {
		codec = protocol.JSON
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		rooms:  rooms,
		codec:  codec,
		logger: logger,
		upgrader: websocket.Upgrader{
			// For dev, allow all origins. Lock this down in prod.
			CheckOrigin:  func(r *http.Request) bool { return true },
			Subprotocols: []string{protocol.SubprotocolMsgpack, protocol.SubprotocolJSON},
		},
	}
}

// ServeHTTP joins the room named by the "room" query parameter, or the
// default room, and runs the session until the socket closes. Rooms are
// only created for requests that upgraded successfully.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" && h.rooms.Default() == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("WebSocket upgrade error: %v", err)
		return
	}

	codec := h.codec
	if sp := ws.Subprotocol(); sp != "" {
		codec = protocol.CodecFor(sp)
	}
	c := newWSConn(uuid.NewString(), ws, codec, h.logger)
	go c.writePump()

	target := h.rooms.Default()
	if code != "" {
		target = h.rooms.GetOrCreateRoom(code)
	}
	if target == nil {
		c.Close()
		return
	}
	if !h.join(target, c) {
		c.Close()
		// A room created for this request must not outlive it.
		target.Submit(room.Release{})
		return
	}

	h.logger.Printf("User has connected: %s (room %s, %s)", c.id, target.Code, c.codec.Name())
	c.readPump(target)
	h.logger.Printf("User has disconnected: %s", c.id)
}

func (h *Handler) join(target *room.Room, c *wsConn) bool {
	reply := make(chan room.JoinResult, 1)
	if !target.Submit(room.Join{ConnID: c.id, Conn: c, Reply: reply}) {
		return false
	}
	select {
	case res := <-reply:
		return res.OK
	case <-target.Done():
		return false
	}
}
