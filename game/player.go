package game

import (
	"maps"
	"math"
	"slices"
)

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

type Player struct {
	ID            string
	X, Y          float64
	Score         int
	Width, Height float64
}

func (p Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// PlayerRegistry tracks one player per live connection. Every method is a
// silent no-op for ids it does not know; moves that arrive after a
// disconnect are expected.
type PlayerRegistry struct {
	players map[string]*Player
	rng     Source
}

func NewPlayerRegistry(rng Source) *PlayerRegistry {
	return &PlayerRegistry{
		players: make(map[string]*Player),
		rng:     rng,
	}
}

// Add creates a player for connID at a random in-bounds position. Adding an
// id that is already registered returns the existing player unchanged.
func (r *PlayerRegistry) Add(connID string) Player {
	if p, ok := r.players[connID]; ok {
		return *p
	}
	p := &Player{
		ID:     connID,
		X:      randomCoord(r.rng, FieldWidth-PlayerWidth),
		Y:      randomCoord(r.rng, FieldHeight-PlayerHeight),
		Width:  PlayerWidth,
		Height: PlayerHeight,
	}
	r.players[connID] = p
	return *p
}

// Remove deletes connID and reports whether it was present.
func (r *PlayerRegistry) Remove(connID string) bool {
	if _, ok := r.players[connID]; !ok {
		return false
	}
	delete(r.players, connID)
	return true
}

// ApplyMove shifts the player speed units in dir and clamps it into the
// field. Unknown directions and non-finite or non-positive speeds leave the
// position unchanged. The bool is false when connID is not registered.
func (r *PlayerRegistry) ApplyMove(connID string, dir Direction, speed float64) (Player, bool) {
	p, ok := r.players[connID]
	if !ok {
		return Player{}, false
	}
	if math.IsNaN(speed) || speed <= 0 {
		return *p, true
	}

	x, y := p.X, p.Y
	switch dir {
	case Up:
		y -= speed
	case Down:
		y += speed
	case Left:
		x -= speed
	case Right:
		x += speed
	default:
		return *p, true
	}

	p.X = clamp(x, 0, FieldWidth-p.Width)
	p.Y = clamp(y, 0, FieldHeight-p.Height)
	return *p, true
}

// Place moves the player to (x, y), clamped into the field.
func (r *PlayerRegistry) Place(connID string, x, y float64) (Player, bool) {
	p, ok := r.players[connID]
	if !ok {
		return Player{}, false
	}
	p.X = clamp(x, 0, FieldWidth-p.Width)
	p.Y = clamp(y, 0, FieldHeight-p.Height)
	return *p, true
}

func (r *PlayerRegistry) award(connID string, points int) {
	if p, ok := r.players[connID]; ok && points > 0 {
		p.Score += points
	}
}

func (r *PlayerRegistry) Get(connID string) (Player, bool) {
	p, ok := r.players[connID]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

func (r *PlayerRegistry) Len() int {
	return len(r.players)
}

// All returns copies of every player ordered by id.
func (r *PlayerRegistry) All() []Player {
	out := make([]Player, 0, len(r.players))
	for _, id := range slices.Sorted(maps.Keys(r.players)) {
		out = append(out, *r.players[id])
	}
	return out
}

// Others returns every player except connID, ordered by id.
func (r *PlayerRegistry) Others(connID string) []Player {
	out := make([]Player, 0, len(r.players))
	for _, p := range r.All() {
		if p.ID != connID {
			out = append(out, p)
		}
	}
	return out
}

func (r *PlayerRegistry) Scores() []Score {
	out := make([]Score, 0, len(r.players))
	for _, p := range r.All() {
		out = append(out, Score{ID: p.ID, Points: p.Score})
	}
	return out
}
