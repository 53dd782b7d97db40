package game

// ScoreEvent records one consumed collectible and the replacement spawned in
// its place.
type ScoreEvent struct {
	PlayerID       string
	ConsumedID     int
	NewCollectible Collectible
	Value          int
}

// Resolve checks playerID against live collectibles in ascending id order and
// consumes the first one it overlaps. At most one collectible is consumed per
// call even when several overlap.
func (w *World) Resolve(playerID string) (ScoreEvent, bool) {
	p, ok := w.Players.Get(playerID)
	if !ok {
		return ScoreEvent{}, false
	}
	box := p.Bounds()
	for _, c := range w.Collectibles.All() {
		if !Overlaps(box, c.Bounds()) {
			continue
		}
		w.Players.award(playerID, c.Value)
		w.Collectibles.Remove(c.ID)
		return ScoreEvent{
			PlayerID:       playerID,
			ConsumedID:     c.ID,
			NewCollectible: w.Collectibles.Spawn(),
			Value:          c.Value,
		}, true
	}
	return ScoreEvent{}, false
}

// Move applies a movement intent and resolves collisions for the moved
// player. ok is false when playerID is not registered, in which case nothing
// changed.
func (w *World) Move(playerID string, dir Direction, speed float64) (p Player, hit *ScoreEvent, ok bool) {
	if _, ok = w.Players.ApplyMove(playerID, dir, speed); !ok {
		return Player{}, nil, false
	}
	if ev, scored := w.Resolve(playerID); scored {
		hit = &ev
	}
	p, _ = w.Players.Get(playerID)
	return p, hit, true
}
