// Package mirror keeps a client's local copy of a room, rebuilt purely from
// server events. A Mirror never decides anything: positions, scores and
// collectibles only change when the server says so.
package mirror

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"coinrush/game"
	"coinrush/protocol"
)

type Mirror struct {
	mu           sync.RWMutex
	self         string
	ready        bool
	players      map[string]protocol.Player
	collectibles map[int]protocol.Collectible
}

func New() *Mirror {
	return &Mirror{
		players:      make(map[string]protocol.Player),
		collectibles: make(map[int]protocol.Collectible),
	}
}

// Apply decodes one server frame and folds it in. Unknown event types are
// ignored so newer servers can add events.
func (m *Mirror) Apply(c protocol.Codec, env protocol.Envelope) error {
	switch env.T {
	case protocol.MsgInit:
		v, err := protocol.DecodePayloadWith[protocol.Init](c, env)
		if err != nil {
			return fmt.Errorf("decode %s: %w", env.T, err)
		}
		m.OnInit(v)
	case protocol.MsgPlayerJoined:
		v, err := protocol.DecodePayloadWith[protocol.Player](c, env)
		if err != nil {
			return fmt.Errorf("decode %s: %w", env.T, err)
		}
		m.OnPlayerJoined(v)
	case protocol.MsgPlayerMoved:
		v, err := protocol.DecodePayloadWith[protocol.Player](c, env)
		if err != nil {
			return fmt.Errorf("decode %s: %w", env.T, err)
		}
		m.OnPlayerMoved(v)
	case protocol.MsgCollectibleCollected:
		v, err := protocol.DecodePayloadWith[protocol.CollectibleCollected](c, env)
		if err != nil {
			return fmt.Errorf("decode %s: %w", env.T, err)
		}
		m.OnCollectibleCollected(v)
	case protocol.MsgNewCollectible:
		v, err := protocol.DecodePayloadWith[protocol.Collectible](c, env)
		if err != nil {
			return fmt.Errorf("decode %s: %w", env.T, err)
		}
		m.OnNewCollectible(v)
	case protocol.MsgPlayerLeft:
		v, err := protocol.DecodePayloadWith[protocol.PlayerLeft](c, env)
		if err != nil {
			return fmt.Errorf("decode %s: %w", env.T, err)
		}
		m.OnPlayerLeft(v)
	}
	return nil
}

// OnInit replaces everything the mirror knew.
func (m *Mirror) OnInit(v protocol.Init) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.self = v.Player.ID
	m.ready = true
	clear(m.players)
	clear(m.collectibles)
	m.players[v.Player.ID] = v.Player
	for _, p := range v.Players {
		if p.ID != m.self {
			m.players[p.ID] = p
		}
	}
	for _, c := range v.Collectibles {
		m.collectibles[c.ID] = c
	}
}

func (m *Mirror) OnPlayerJoined(p protocol.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == m.self {
		return
	}
	m.players[p.ID] = p
}

// OnPlayerMoved takes position and score as given. A move for a player the
// mirror has not seen is dropped.
func (m *Mirror) OnPlayerMoved(p protocol.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.players[p.ID]
	if !ok {
		return
	}
	cur.X, cur.Y, cur.Score = p.X, p.Y, p.Score
	m.players[p.ID] = cur
}

func (m *Mirror) OnCollectibleCollected(v protocol.CollectibleCollected) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collectibles, v.CollectibleID)
	m.collectibles[v.NewCollectible.ID] = v.NewCollectible
	if p, ok := m.players[v.PlayerID]; ok {
		p.Score += v.CollectibleValue
		m.players[v.PlayerID] = p
	}
}

func (m *Mirror) OnNewCollectible(c protocol.Collectible) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectibles[c.ID] = c
}

func (m *Mirror) OnPlayerLeft(v protocol.PlayerLeft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == m.self {
		return
	}
	delete(m.players, v.ID)
}

// Ready reports whether an init snapshot has arrived.
func (m *Mirror) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

func (m *Mirror) Self() (protocol.Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[m.self]
	return p, ok && m.ready
}

// Players returns copies of every known player, self included, ordered by id.
func (m *Mirror) Players() []protocol.Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]protocol.Player, 0, len(m.players))
	for _, id := range slices.Sorted(maps.Keys(m.players)) {
		out = append(out, m.players[id])
	}
	return out
}

// Collectibles returns copies of every known collectible ordered by id.
func (m *Mirror) Collectibles() []protocol.Collectible {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]protocol.Collectible, 0, len(m.collectibles))
	for _, id := range slices.Sorted(maps.Keys(m.collectibles)) {
		out = append(out, m.collectibles[id])
	}
	return out
}

// Rank is this client's position in the local leaderboard.
func (m *Mirror) Rank() (rank, total int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	scores := make([]game.Score, 0, len(m.players))
	for _, p := range m.players {
		scores = append(scores, game.Score{ID: p.ID, Points: p.Score})
	}
	return game.Rank(scores, m.self)
}

func (m *Mirror) RankLabel() string {
	return game.RankLabel(m.Rank())
}
