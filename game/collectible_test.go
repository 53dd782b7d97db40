package game

import "testing"

func TestSpawnStaysInBoundsWithValidValue(t *testing.T) {
	r := NewCollectibleRegistry(newTestRNG())
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		c := r.Spawn()
		if c.X < 0 || c.X > FieldWidth-CollectibleSize || c.Y < 0 || c.Y > FieldHeight-CollectibleSize {
			t.Fatalf("collectible %d out of bounds at (%v,%v)", c.ID, c.X, c.Y)
		}
		if c.Value < CollectibleMinValue || c.Value > CollectibleMaxValue {
			t.Fatalf("collectible %d value %d out of range", c.ID, c.Value)
		}
		seen[c.Value] = true
	}
	for v := CollectibleMinValue; v <= CollectibleMaxValue; v++ {
		if !seen[v] {
			t.Fatalf("value %d never drawn in 2000 spawns", v)
		}
	}
}

func TestCollectibleIDsStrictlyIncreaseAcrossCycles(t *testing.T) {
	r := NewCollectibleRegistry(newTestRNG())
	r.Seed(DefaultCollectibleFloor)

	last := -1
	for _, c := range r.All() {
		if c.ID <= last {
			t.Fatalf("seed ids not increasing: %d after %d", c.ID, last)
		}
		last = c.ID
	}

	used := map[int]bool{}
	for _, c := range r.All() {
		used[c.ID] = true
	}
	for i := 0; i < 1000; i++ {
		victim := r.All()[i%r.Len()]
		r.Remove(victim.ID)
		c := r.Spawn()
		if c.ID <= last {
			t.Fatalf("spawned id %d not greater than previous %d", c.ID, last)
		}
		if used[c.ID] {
			t.Fatalf("id %d reused", c.ID)
		}
		used[c.ID] = true
		last = c.ID
	}
	if r.Len() != DefaultCollectibleFloor {
		t.Fatalf("Len = %d, want %d", r.Len(), DefaultCollectibleFloor)
	}
}

func TestRemoveCollectibleTwiceChangesNothing(t *testing.T) {
	r := NewCollectibleRegistry(newTestRNG())
	r.Seed(3)
	target := r.All()[1]

	if !r.Remove(target.ID) {
		t.Fatalf("first remove should report true")
	}
	before := r.All()
	nextBefore := r.NextID()
	if r.Remove(target.ID) {
		t.Fatalf("second remove should report false")
	}
	after := r.All()
	if len(before) != len(after) || r.NextID() != nextBefore {
		t.Fatalf("second remove changed registry: before=%v after=%v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("second remove changed entry %d: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestEnsureFloorSpawnsOneAtATime(t *testing.T) {
	r := NewCollectibleRegistry(newTestRNG())
	r.Seed(2)

	c, spawned := r.EnsureFloor(5)
	if !spawned {
		t.Fatalf("expected a spawn below the floor")
	}
	if _, ok := r.Get(c.ID); !ok {
		t.Fatalf("spawned collectible %d not in registry", c.ID)
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3 after a single top-up", r.Len())
	}

	r.EnsureFloor(5)
	r.EnsureFloor(5)
	if _, spawned := r.EnsureFloor(5); spawned {
		t.Fatalf("expected no spawn at the floor")
	}
	if r.Len() != 5 {
		t.Fatalf("Len = %d, want 5", r.Len())
	}
}

func TestInsertClampsPositionAndValue(t *testing.T) {
	r := NewCollectibleRegistry(newTestRNG())
	c := r.Insert(10_000, -3, 99)
	if c.X != FieldWidth-CollectibleSize || c.Y != 0 {
		t.Fatalf("Insert position = (%v,%v)", c.X, c.Y)
	}
	if c.Value != CollectibleMaxValue {
		t.Fatalf("Insert value = %d, want %d", c.Value, CollectibleMaxValue)
	}
	if low := r.Insert(0, 0, 0); low.Value != CollectibleMinValue {
		t.Fatalf("Insert value = %d, want %d", low.Value, CollectibleMinValue)
	}
}
