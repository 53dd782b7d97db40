package protocol

import (
	"encoding/json"
)

const (
	MsgInit                 = "init"
	MsgPlayerJoined         = "playerJoined"
	MsgMove                 = "move"
	MsgPlayerMoved          = "playerMoved"
	MsgCollectibleCollected = "collectibleCollected"
	MsgNewCollectible       = "newCollectible"
	MsgPlayerLeft           = "playerLeft"
)

const (
	FloorCheckMs     = 3000
	CollectibleFloor = 5
)

// Websocket subprotocols a client may offer to pick the frame codec.
// Clients that offer none get JSON text frames.
const (
	SubprotocolJSON    = "coinrush.json"
	SubprotocolMsgpack = "coinrush.msgpack"
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes in the envelope's codec
}
