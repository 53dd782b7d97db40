package room

import "coinrush/protocol"

// Conn is one client's outbound side. Send must not block the room; the
// transport buffers and drops on its own.
type Conn interface {
	Send([]byte) error
	Close() error
	Codec() protocol.Codec
}

// Join: issued once the transport has assigned a connection id
type Join struct {
	ConnID string
	Conn   Conn
	Reply  chan<- JoinResult // optional
}

type JoinResult struct {
	Player protocol.Player
	OK     bool
}

// Move: one movement intent, in the order the connection sent it
type Move struct {
	ConnID string
	Move   protocol.Move
}

// Leave: issued on disconnect or transport failure
type Leave struct {
	ConnID string
}

// Standings asks for the current leaderboard.
type Standings struct {
	Reply chan<- []protocol.Standing
}

// Snapshot asks for every player and collectible currently live.
type Snapshot struct {
	Reply chan<- protocol.State
}

// Release removes the room if nobody is connected. The transport sends it
// when a join it started never completed.
type Release struct{}
