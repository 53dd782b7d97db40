package room

import (
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"coinrush/game"
	"coinrush/protocol"
)

const defaultIdleTicks = 20

type Options struct {
	Floor         int           // live collectibles kept in the room
	FloorInterval time.Duration // how often the floor is checked
	IdleTicks     int           // empty floor ticks before an unpinned room releases itself
	RNG           *rand.Rand
	Logger        *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Floor <= 0 {
		o.Floor = protocol.CollectibleFloor
	}
	if o.FloorInterval <= 0 {
		o.FloorInterval = protocol.FloorCheckMs * time.Millisecond
	}
	if o.IdleTicks <= 0 {
		o.IdleTicks = defaultIdleTicks
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Room is one authoritative session. Every mutation happens on the goroutine
// running Run, one command at a time, so the world needs no locking.
type Room struct {
	Inbox         chan any
	floor         int
	floorInterval time.Duration
	idleLimit     int
	idle          int
	world         *game.World
	clients       map[string]Conn
	players       atomic.Int32
	logger        *log.Logger
	quit          chan struct{}
	stopOnce      sync.Once

	Code    string            // room code (e.g. "ABC123")
	Pinned  bool              // pinned rooms survive their last player leaving
	OnEmpty func(code string) // called when the room has no players left
}

func New(opts Options) *Room {
	opts = opts.withDefaults()
	r := &Room{
		Inbox:         make(chan any, 256),
		floor:         opts.Floor,
		floorInterval: opts.FloorInterval,
		idleLimit:     opts.IdleTicks,
		world:         game.NewWorld(opts.RNG),
		clients:       make(map[string]Conn),
		logger:        opts.Logger,
		quit:          make(chan struct{}),
	}
	r.world.Collectibles.Seed(r.floor)
	return r
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Done is closed once the room has been stopped.
func (r *Room) Done() <-chan struct{} {
	return r.quit
}

// Submit queues cmd for the room goroutine. It returns false if the room
// stopped first.
func (r *Room) Submit(cmd any) bool {
	select {
	case <-r.quit:
		return false
	default:
	}
	select {
	case <-r.quit:
		return false
	case r.Inbox <- cmd:
		return true
	}
}

// NumPlayers returns the current number of connected clients.
func (r *Room) NumPlayers() int {
	return int(r.players.Load())
}

func (r *Room) Run() {
	ticker := time.NewTicker(r.floorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.Dispatch(cmd)
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Dispatch handles one command to completion. Run is the only caller in a
// live server; tests call it directly.
func (r *Room) Dispatch(cmd any) {
	switch c := cmd.(type) {
	case Join:
		res := r.handleJoin(c.ConnID, c.Conn)
		if c.Reply != nil {
			c.Reply <- res
		}
	case Move:
		r.handleMove(c.ConnID, c.Move)
	case Leave:
		r.handleLeave(c.ConnID)
	case Standings:
		if c.Reply != nil {
			c.Reply <- r.buildStandings()
		}
	case Snapshot:
		if c.Reply != nil {
			c.Reply <- r.buildState()
		}
	case Release:
		if len(r.clients) == 0 {
			r.release()
		}
	default:
		r.logger.Printf("room %s: ignoring unknown command %T", r.Code, cmd)
	}
}

// Tick tops the collectibles back up to the floor, one per call. An
// unpinned room that has been empty for IdleTicks ticks releases itself
// instead.
func (r *Room) Tick() {
	if len(r.clients) > 0 {
		r.idle = 0
	} else {
		r.idle++
		if r.idle >= r.idleLimit && r.release() {
			return
		}
	}
	c, spawned := r.world.Collectibles.EnsureFloor(r.floor)
	if !spawned {
		return
	}
	r.broadcast(protocol.MsgNewCollectible, collectibleSnapshot(c), "")
}

func (r *Room) handleJoin(connID string, c Conn) JoinResult {
	if connID == "" || c == nil {
		return JoinResult{}
	}
	if _, ok := r.clients[connID]; ok {
		p, _ := r.world.Players.Get(connID)
		return JoinResult{Player: playerSnapshot(p), OK: true}
	}

	p := r.world.Players.Add(connID)
	r.clients[connID] = c
	r.players.Store(int32(len(r.clients)))
	r.logger.Printf("room %s: player %s joined (%d connected)", r.Code, connID, len(r.clients))

	if err := r.sendTo(c, protocol.MsgInit, r.buildInit(connID)); err != nil {
		// Nobody else has heard of this player yet, so drop it quietly.
		r.logger.Printf("room %s: init to %s failed: %v", r.Code, connID, err)
		_ = c.Close()
		delete(r.clients, connID)
		r.world.Players.Remove(connID)
		r.players.Store(int32(len(r.clients)))
		return JoinResult{}
	}
	r.broadcast(protocol.MsgPlayerJoined, playerSnapshot(p), connID)
	return JoinResult{Player: playerSnapshot(p), OK: true}
}

func (r *Room) handleMove(connID string, mv protocol.Move) {
	if _, ok := r.clients[connID]; !ok {
		return
	}
	p, hit, ok := r.world.Move(connID, game.Direction(mv.Direction), mv.Speed)
	if !ok {
		return
	}
	if hit != nil {
		r.broadcast(protocol.MsgCollectibleCollected, protocol.CollectibleCollected{
			PlayerID:         hit.PlayerID,
			CollectibleID:    hit.ConsumedID,
			NewCollectible:   collectibleSnapshot(hit.NewCollectible),
			CollectibleValue: hit.Value,
		}, "")
	}
	// The sender may have been dropped by the broadcast above.
	if _, ok := r.clients[connID]; !ok {
		return
	}
	r.broadcast(protocol.MsgPlayerMoved, playerSnapshot(p), "")
}

func (r *Room) handleLeave(connID string) {
	c, connected := r.clients[connID]
	removed := r.world.Players.Remove(connID)
	if connected {
		_ = c.Close()
		delete(r.clients, connID)
		r.players.Store(int32(len(r.clients)))
		r.logger.Printf("room %s: player %s left (%d connected)", r.Code, connID, len(r.clients))
	}
	if removed {
		r.broadcast(protocol.MsgPlayerLeft, protocol.PlayerLeft{ID: connID}, "")
	}
	if connected && len(r.clients) == 0 {
		r.release()
	}
}

// release hands an unpinned room back to its manager.
func (r *Room) release() bool {
	if r.Pinned || r.OnEmpty == nil || r.Code == "" {
		return false
	}
	r.OnEmpty(r.Code)
	return true
}

// broadcast sends one event to every client except skip. Payloads are
// encoded once per codec; a codec that cannot encode the payload is skipped.
// Clients whose Send fails are treated as disconnected once the fan-out is
// done.
func (r *Room) broadcast(t string, payload any, skip string) {
	frames := make(map[string][]byte, 2)
	var failed []string
	for id, c := range r.clients {
		if id == skip {
			continue
		}
		codec := c.Codec()
		b, ok := frames[codec.Name()]
		if !ok {
			var err error
			b, err = protocol.EncodeWith(codec, t, payload)
			if err != nil {
				r.logger.Printf("room %s: encode %s as %s: %v", r.Code, t, codec.Name(), err)
			}
			frames[codec.Name()] = b
		}
		if b == nil {
			continue
		}
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.handleLeave(id)
	}
}

func (r *Room) sendTo(c Conn, t string, payload any) error {
	b, err := protocol.EncodeWith(c.Codec(), t, payload)
	if err != nil {
		return err
	}
	return c.Send(b)
}
