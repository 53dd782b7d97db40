package network

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"coinrush/protocol"
	"coinrush/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4 << 10
	sendBuffer     = 256
)

var (
	errSendBufferFull = errors.New("send buffer full")
	errConnClosed     = errors.New("connection closed")
)

// wsConn is the room's view of one websocket. Frames are queued for the
// write pump; a client too slow to drain its queue is disconnected rather
// than allowed to miss events.
type wsConn struct {
	id     string
	ws     *websocket.Conn
	codec  protocol.Codec
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	closed bool
	logger *log.Logger
}

func newWSConn(id string, ws *websocket.Conn, codec protocol.Codec, logger *log.Logger) *wsConn {
	return &wsConn{
		id:     id,
		ws:     ws,
		codec:  codec,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

var _ room.Conn = (*wsConn)(nil)

func (c *wsConn) Codec() protocol.Codec { return c.codec }

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	select {
	case c.send <- b:
		return nil
	default:
		c.logger.Printf("Send buffer full for player %s", c.id)
		return errSendBufferFull
	}
}

// Close stops the write pump, which flushes what is queued and closes the
// socket.
func (c *wsConn) Close() error {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
	return nil
}

func (c *wsConn) messageType() int {
	if c.codec.Binary() {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.write(c.messageType(), message); err != nil {
				return
			}

		case <-c.done:
			for {
				select {
				case message := <-c.send:
					if err := c.write(c.messageType(), message); err != nil {
						return
					}
				default:
					_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsConn) write(messageType int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(messageType, data)
}

// readPump forwards movement intents to r in arrival order until the socket
// fails, then reports the disconnect.
func (c *wsConn) readPump(r *room.Room) {
	defer func() {
		r.Submit(room.Leave{ConnID: c.id})
		c.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Printf("WebSocket error for %s: %v", c.id, err)
			}
			return
		}

		env, err := protocol.DecodeEnvelopeWith(c.codec, message)
		if err != nil {
			c.logger.Printf("discarding malformed frame from %s: %v", c.id, err)
			continue
		}

		switch env.T {
		case protocol.MsgMove:
			mv, err := protocol.DecodePayloadWith[protocol.Move](c.codec, env)
			if err != nil {
				c.logger.Printf("discarding malformed move from %s: %v", c.id, err)
				continue
			}
			if !r.Submit(room.Move{ConnID: c.id, Move: mv}) {
				return
			}
		default:
			c.logger.Printf("ignoring %q from %s", env.T, c.id)
		}
	}
}
