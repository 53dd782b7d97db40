package game

import "testing"

func TestResolveCollectsOverlappingCollectible(t *testing.T) {
	w := NewWorld(newTestRNG())
	w.Players.Add("p1")
	w.Players.Place("p1", 0, 0)
	target := w.Collectibles.Insert(10, 10, 7)

	ev, ok := w.Resolve("p1")
	if !ok {
		t.Fatalf("expected a hit")
	}
	if ev.ConsumedID != target.ID || ev.Value != 7 || ev.PlayerID != "p1" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if _, live := w.Collectibles.Get(target.ID); live {
		t.Fatalf("consumed collectible %d still live", target.ID)
	}
	if ev.NewCollectible.ID <= target.ID {
		t.Fatalf("replacement id %d not fresh (consumed %d)", ev.NewCollectible.ID, target.ID)
	}
	if _, live := w.Collectibles.Get(ev.NewCollectible.ID); !live {
		t.Fatalf("replacement %d not in registry", ev.NewCollectible.ID)
	}
	p, _ := w.Players.Get("p1")
	if p.Score != 7 {
		t.Fatalf("score = %d, want 7", p.Score)
	}
	if w.Collectibles.Len() != 1 {
		t.Fatalf("Len = %d, want 1", w.Collectibles.Len())
	}
}

func TestResolveConsumesAtMostOnePerCall(t *testing.T) {
	w := NewWorld(newTestRNG())
	w.Players.Add("p1")
	w.Players.Place("p1", 300, 300)
	first := w.Collectibles.Insert(310, 310, 3)
	second := w.Collectibles.Insert(320, 320, 5)

	ev, ok := w.Resolve("p1")
	if !ok {
		t.Fatalf("expected a hit")
	}
	if ev.ConsumedID != first.ID {
		t.Fatalf("consumed %d, want lowest id %d", ev.ConsumedID, first.ID)
	}
	if _, live := w.Collectibles.Get(second.ID); !live {
		t.Fatalf("second overlapping collectible was consumed too")
	}
	p, _ := w.Players.Get("p1")
	if p.Score != 3 {
		t.Fatalf("score = %d, want 3", p.Score)
	}
}

func TestResolveWithoutOverlapChangesNothing(t *testing.T) {
	w := NewWorld(newTestRNG())
	w.Players.Add("p1")
	w.Players.Place("p1", 0, 0)
	c := w.Collectibles.Insert(50, 0, 9) // shares an edge only

	if _, ok := w.Resolve("p1"); ok {
		t.Fatalf("edge contact should not score")
	}
	if _, live := w.Collectibles.Get(c.ID); !live {
		t.Fatalf("collectible removed without a hit")
	}
	if next := w.Collectibles.NextID(); next != c.ID+1 {
		t.Fatalf("NextID = %d, want %d", next, c.ID+1)
	}
}

func TestResolveUnknownPlayer(t *testing.T) {
	w := NewWorld(newTestRNG())
	w.Collectibles.Insert(0, 0, 4)
	if _, ok := w.Resolve("ghost"); ok {
		t.Fatalf("unknown player should not score")
	}
	if w.Collectibles.Len() != 1 {
		t.Fatalf("collectible registry changed")
	}
}

func TestMoveIntoCollectibleScores(t *testing.T) {
	w := NewWorld(newTestRNG())
	w.Players.Add("p1")
	w.Players.Place("p1", 100, 0)
	c := w.Collectibles.Insert(60, 10, 7)

	p, hit, ok := w.Move("p1", Left, 15)
	if !ok {
		t.Fatalf("expected p1 to exist")
	}
	if p.X != 85 {
		t.Fatalf("x = %v, want 85", p.X)
	}
	if hit == nil || hit.ConsumedID != c.ID {
		t.Fatalf("expected to consume %d, got %+v", c.ID, hit)
	}
	if p.Score != 7 {
		t.Fatalf("returned player score = %d, want 7", p.Score)
	}
}

func TestMoveUnknownPlayerReportsNotOK(t *testing.T) {
	w := NewWorld(newTestRNG())
	w.Collectibles.Seed(DefaultCollectibleFloor)
	next := w.Collectibles.NextID()
	if _, hit, ok := w.Move("gone", Up, 15); ok || hit != nil {
		t.Fatalf("move for unknown player: ok=%v hit=%v", ok, hit)
	}
	if w.Collectibles.NextID() != next || w.Collectibles.Len() != DefaultCollectibleFloor {
		t.Fatalf("collectibles changed on unknown move")
	}
}
