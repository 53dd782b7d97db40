package room

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"slices"
	"strings"
	"sync"
)

// RoomInfo is returned by the API for the server list.
type RoomInfo struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
	Pinned  bool   `json:"pinned,omitempty"`
}

// Manager holds multiple rooms by code. Each room is an independent session
// with its own players and collectibles. The default room is pinned and
// lives as long as the manager; other rooms are removed when the last player
// leaves.
type Manager struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	opts        Options
	defaultCode string
}

func NewManager(defaultCode string, opts Options) *Manager {
	m := &Manager{
		rooms:       make(map[string]*Room),
		opts:        opts.withDefaults(),
		defaultCode: normalizeCode(defaultCode),
	}
	if m.defaultCode != "" {
		r := m.newRoom(m.defaultCode)
		r.Pinned = true
		m.rooms[m.defaultCode] = r
		go r.Run()
	}
	return m
}

func (m *Manager) DefaultCode() string {
	return m.defaultCode
}

// Default returns the pinned room, or nil if the manager has none.
func (m *Manager) Default() *Room {
	return m.Get(m.defaultCode)
}

func (m *Manager) Get(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[normalizeCode(code)]
}

// GetOrCreateRoom returns the room for the given code, creating it if needed.
func (m *Manager) GetOrCreateRoom(code string) *Room {
	code = normalizeCode(code)
	if code == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		return r
	}
	r := m.newRoom(code)
	m.rooms[code] = r
	go r.Run()
	return r
}

// newRoom must be called with m.mu held or before the manager is shared.
func (m *Manager) newRoom(code string) *Room {
	opts := m.opts
	if opts.RNG != nil {
		// Rooms run on their own goroutines and cannot share a generator.
		opts.RNG = mrand.New(mrand.NewPCG(opts.RNG.Uint64(), opts.RNG.Uint64()))
	}
	r := New(opts)
	r.Code = code
	r.OnEmpty = func(c string) {
		m.removeRoom(c)
	}
	return r
}

func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok && !r.Pinned {
		r.Stop()
		delete(m.rooms, code)
		m.opts.Logger.Printf("room %s removed", code)
	}
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateRoom generates a unique 6-char code, creates the room, and returns the code.
func (m *Manager) CreateRoom() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		code := generateCode(6)
		if _, exists := m.rooms[code]; exists {
			continue
		}
		r := m.newRoom(code)
		m.rooms[code] = r
		go r.Run()
		m.opts.Logger.Printf("room %s created", code)
		return code
	}
}

// ListRooms returns all active rooms with code and player count, ordered by code.
func (m *Manager) ListRooms() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		out = append(out, RoomInfo{Code: code, Players: r.NumPlayers(), Pinned: r.Pinned})
	}
	slices.SortFunc(out, func(a, b RoomInfo) int { return strings.Compare(a.Code, b.Code) })
	return out
}

// Shutdown stops every room, pinned ones included.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, r := range m.rooms {
		r.Stop()
		delete(m.rooms, code)
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
