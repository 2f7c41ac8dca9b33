// Package status exposes live game snapshots over a read-only HTTP API.
package status

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/vovakirdan/tui-deal/internal/engine"
)

// ErrSessionNotFound is returned when no snapshot exists for a session.
var ErrSessionNotFound = errors.New("status: session not found")

// Entry is the latest snapshot published by one session.
type Entry struct {
	Session   string
	GameID    string
	Snapshot  engine.Snapshot
	UpdatedAt time.Time

	seq uint64
}

// Hub holds the latest snapshot per session. It is safe for concurrent use.
type Hub struct {
	clock quartz.Clock

	mu      sync.RWMutex
	entries map[string]Entry
	seq     uint64
}

// NewHub creates an empty hub. A nil clock uses the real clock.
func NewHub(clock quartz.Clock) *Hub {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Hub{
		clock:   clock,
		entries: make(map[string]Entry),
	}
}

// Publish replaces the snapshot stored for session.
func (h *Hub) Publish(session, gameID string, snap engine.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	h.entries[session] = Entry{
		Session:   session,
		GameID:    gameID,
		Snapshot:  snap,
		UpdatedAt: h.clock.Now(),
		seq:       h.seq,
	}
}

// Remove forgets a session.
func (h *Hub) Remove(session string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, session)
}

// Get returns the entry for session.
func (h *Hub) Get(session string) (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.entries[session]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrSessionNotFound, session)
	}
	return e, nil
}

// Latest returns the most recently published entry.
func (h *Hub) Latest() (Entry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var latest Entry
	found := false
	for _, e := range h.entries {
		if !found || e.seq > latest.seq {
			latest = e
			found = true
		}
	}
	return latest, found
}

// List returns all entries, most recently updated first.
func (h *Hub) List() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].seq > out[j].seq
	})
	return out
}

// Len returns the number of sessions with a snapshot.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
