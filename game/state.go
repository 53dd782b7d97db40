package game

import "math/rand/v2"

// Internal truth authoritative game state

// Source is the randomness the registries draw spawn positions and values
// from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// World owns both registries for one session. It is not safe for concurrent
// use; the owning room serializes every call.
type World struct {
	Players      *PlayerRegistry
	Collectibles *CollectibleRegistry
}

// NewWorld builds an empty world drawing positions and values from rng.
// A nil rng gets a randomly seeded generator.
func NewWorld(rng *rand.Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &World{
		Players:      NewPlayerRegistry(rng),
		Collectibles: NewCollectibleRegistry(rng),
	}
}
