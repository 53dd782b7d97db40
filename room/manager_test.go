package room

import (
	"testing"
	"time"
)

func TestManagerPinsDefaultRoom(t *testing.T) {
	m := NewManager("main", testOptions())
	defer m.Shutdown()

	if m.DefaultCode() != "MAIN" {
		t.Fatalf("DefaultCode = %q, want MAIN", m.DefaultCode())
	}
	def := m.Default()
	if def == nil || !def.Pinned {
		t.Fatalf("default room missing or not pinned: %+v", def)
	}
	if m.GetOrCreateRoom("main") != def {
		t.Fatalf("lookup by lower-case code returned a different room")
	}

	fc := newFakeConn()
	reply := make(chan JoinResult, 1)
	def.Submit(Join{ConnID: "a", Conn: fc, Reply: reply})
	<-reply
	def.Submit(Leave{ConnID: "a"})

	time.Sleep(50 * time.Millisecond)
	if m.Get("MAIN") == nil {
		t.Fatalf("pinned room removed after last player left")
	}
}

func TestManagerRemovesEmptyRoom(t *testing.T) {
	m := NewManager("", testOptions())
	defer m.Shutdown()

	code := m.CreateRoom()
	if len(code) != 6 {
		t.Fatalf("room code %q, want 6 chars", code)
	}
	r := m.Get(code)
	if r == nil {
		t.Fatalf("created room %s not found", code)
	}

	fc := newFakeConn()
	reply := make(chan JoinResult, 1)
	r.Submit(Join{ConnID: "a", Conn: fc, Reply: reply})
	<-reply
	r.Submit(Leave{ConnID: "a"})

	timeout := time.After(1 * time.Second)
	for m.Get(code) != nil {
		select {
		case <-timeout:
			t.Fatalf("room %s not removed after last player left", code)
		case <-time.After(10 * time.Millisecond):
		}
	}
	select {
	case <-r.Done():
	case <-time.After(1 * time.Second):
		t.Fatalf("removed room was not stopped")
	}
}

func TestManagerListRoomsSorted(t *testing.T) {
	m := NewManager("lobby", testOptions())
	defer m.Shutdown()
	m.GetOrCreateRoom("zzz")
	m.GetOrCreateRoom("aaa")
	if m.GetOrCreateRoom("  ") != nil {
		t.Fatalf("blank code should not create a room")
	}

	list := m.ListRooms()
	if len(list) != 3 {
		t.Fatalf("ListRooms = %+v", list)
	}
	if list[0].Code != "AAA" || list[1].Code != "LOBBY" || list[2].Code != "ZZZ" {
		t.Fatalf("ListRooms not sorted: %+v", list)
	}
	if !list[1].Pinned {
		t.Fatalf("default room not reported as pinned")
	}
}

func TestManagerReapsRoomsNobodyJoined(t *testing.T) {
	opts := testOptions()
	opts.FloorInterval = 5 * time.Millisecond
	opts.IdleTicks = 2
	m := NewManager("main", opts)
	defer m.Shutdown()

	created := m.CreateRoom()
	m.GetOrCreateRoom("empty")

	timeout := time.After(1 * time.Second)
	for m.Get(created) != nil || m.Get("EMPTY") != nil {
		select {
		case <-timeout:
			t.Fatalf("idle rooms still listed: %+v", m.ListRooms())
		case <-time.After(10 * time.Millisecond):
		}
	}
	if m.Default() == nil {
		t.Fatalf("pinned room reaped")
	}
}
