package room

import (
	"coinrush/game"
	"coinrush/protocol"
)

func playerSnapshot(p game.Player) protocol.Player {
	return protocol.Player{
		ID:     p.ID,
		X:      p.X,
		Y:      p.Y,
		Score:  p.Score,
		Width:  p.Width,
		Height: p.Height,
	}
}

func collectibleSnapshot(c game.Collectible) protocol.Collectible {
	return protocol.Collectible{
		ID:     c.ID,
		X:      c.X,
		Y:      c.Y,
		Value:  c.Value,
		Width:  game.CollectibleSize,
		Height: game.CollectibleSize,
	}
}

func (r *Room) buildInit(connID string) protocol.Init {
	self, _ := r.world.Players.Get(connID)
	others := r.world.Players.Others(connID)
	collectibles := r.world.Collectibles.All()

	snapshot := protocol.Init{
		Player:       playerSnapshot(self),
		Players:      make([]protocol.Player, 0, len(others)),
		Collectibles: make([]protocol.Collectible, 0, len(collectibles)),
	}
	for _, p := range others {
		snapshot.Players = append(snapshot.Players, playerSnapshot(p))
	}
	for _, c := range collectibles {
		snapshot.Collectibles = append(snapshot.Collectibles, collectibleSnapshot(c))
	}
	return snapshot
}

func (r *Room) buildStandings() []protocol.Standing {
	table := game.Standings(r.world.Players.Scores())
	out := make([]protocol.Standing, 0, len(table))
	for _, s := range table {
		out = append(out, protocol.Standing{Rank: s.Rank, ID: s.ID, Score: s.Points})
	}
	return out
}

func (r *Room) buildState() protocol.State {
	players := r.world.Players.All()
	collectibles := r.world.Collectibles.All()
	st := protocol.State{
		Players:      make([]protocol.Player, 0, len(players)),
		Collectibles: make([]protocol.Collectible, 0, len(collectibles)),
	}
	for _, p := range players {
		st.Players = append(st.Players, playerSnapshot(p))
	}
	for _, c := range collectibles {
		st.Collectibles = append(st.Collectibles, collectibleSnapshot(c))
	}
	return st
}
