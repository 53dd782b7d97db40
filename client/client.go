// Package client is a headless game client: it keeps a mirror of one room
// up to date and sends movement intents.
package client

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"coinrush/game"
	"coinrush/mirror"
	"coinrush/protocol"
)

type Client struct {
	ws      *websocket.Conn
	codec   protocol.Codec
	mirror  *mirror.Mirror
	writeMu sync.Mutex
	ready   chan struct{}
	done    chan struct{}
	logger  *log.Logger
}

// Dial connects to a /ws endpoint. codec picks the subprotocol offered to the
// server; nil means JSON.
func Dial(ctx context.Context, url string, codec protocol.Codec, logger *log.Logger) (*Client, error) {
	if codec == nil {
		codec = protocol.JSON
	}
	if logger == nil {
		logger = log.Default()
	}
	sub := protocol.SubprotocolJSON
	if codec.Binary() {
		sub = protocol.SubprotocolMsgpack
	}
	d := websocket.Dialer{Subprotocols: []string{sub}, HandshakeTimeout: 10 * time.Second}
	ws, _, err := d.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{
		ws:     ws,
		codec:  protocol.CodecFor(ws.Subprotocol()),
		mirror: mirror.New(),
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}
	go c.readPump()
	return c, nil
}

// Mirror is the client's read-only view of the room.
func (c *Client) Mirror() *mirror.Mirror {
	return c.mirror
}

// Done is closed when the connection drops.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// WaitReady blocks until the init snapshot has been applied.
func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-c.done:
		return fmt.Errorf("connection closed before init")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) Move(dir game.Direction, speed float64) error {
	b, err := protocol.EncodeWith(c.codec, protocol.MsgMove, protocol.Move{Direction: string(dir), Speed: speed})
	if err != nil {
		return err
	}
	mt := websocket.TextMessage
	if c.codec.Binary() {
		mt = websocket.BinaryMessage
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.ws.WriteMessage(mt, b)
}

func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.ws.Close()
}

func (c *Client) readPump() {
	defer close(c.done)
	var once sync.Once
	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Printf("Read error: %v", err)
			}
			return
		}
		env, err := protocol.DecodeEnvelopeWith(c.codec, message)
		if err != nil {
			c.logger.Printf("discarding frame: %v", err)
			continue
		}
		if err := c.mirror.Apply(c.codec, env); err != nil {
			c.logger.Printf("discarding %s: %v", env.T, err)
			continue
		}
		if env.T == protocol.MsgInit {
			once.Do(func() { close(c.ready) })
		}
	}
}
