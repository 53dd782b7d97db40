package game

import (
	"maps"
	"slices"
)

type Collectible struct {
	ID    int
	X, Y  float64
	Value int
}

// Bounds is the fixed square used for overlap tests.
func (c Collectible) Bounds() Rect {
	return Rect{X: c.X, Y: c.Y, W: CollectibleSize, H: CollectibleSize}
}

// CollectibleRegistry stores live pickups keyed by id. Ids come from a
// counter that only moves forward, so a removed id is never handed out again.
type CollectibleRegistry struct {
	items  map[int]Collectible
	nextID int
	rng    Source
}

func NewCollectibleRegistry(rng Source) *CollectibleRegistry {
	return &CollectibleRegistry{
		items: make(map[int]Collectible),
		rng:   rng,
	}
}

// Spawn creates a collectible at a random in-bounds position with a random
// value and inserts it.
func (r *CollectibleRegistry) Spawn() Collectible {
	x := randomCoord(r.rng, FieldWidth-CollectibleSize)
	y := randomCoord(r.rng, FieldHeight-CollectibleSize)
	value := CollectibleMinValue + r.rng.IntN(CollectibleMaxValue-CollectibleMinValue+1)
	return r.Insert(x, y, value)
}

// Insert places a collectible at an explicit position, clamped into the
// field, with value clamped into the allowed range. It takes the next id.
func (r *CollectibleRegistry) Insert(x, y float64, value int) Collectible {
	if value < CollectibleMinValue {
		value = CollectibleMinValue
	}
	if value > CollectibleMaxValue {
		value = CollectibleMaxValue
	}
	c := Collectible{
		ID:    r.nextID,
		X:     clamp(x, 0, FieldWidth-CollectibleSize),
		Y:     clamp(y, 0, FieldHeight-CollectibleSize),
		Value: value,
	}
	r.nextID++
	r.items[c.ID] = c
	return c
}

// Remove deletes id and reports whether it was present.
func (r *CollectibleRegistry) Remove(id int) bool {
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	return true
}

// EnsureFloor spawns one collectible when fewer than target are live.
func (r *CollectibleRegistry) EnsureFloor(target int) (Collectible, bool) {
	if len(r.items) >= target {
		return Collectible{}, false
	}
	return r.Spawn(), true
}

// Seed spawns n collectibles. Called once when a world is created.
func (r *CollectibleRegistry) Seed(n int) []Collectible {
	out := make([]Collectible, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, r.Spawn())
	}
	return out
}

func (r *CollectibleRegistry) Get(id int) (Collectible, bool) {
	c, ok := r.items[id]
	return c, ok
}

func (r *CollectibleRegistry) Len() int {
	return len(r.items)
}

// NextID is the id the next spawned collectible will receive.
func (r *CollectibleRegistry) NextID() int {
	return r.nextID
}

// All returns every live collectible in ascending id order.
func (r *CollectibleRegistry) All() []Collectible {
	out := make([]Collectible, 0, len(r.items))
	for _, id := range slices.Sorted(maps.Keys(r.items)) {
		out = append(out, r.items[id])
	}
	return out
}
