package resource

import (
	"sync"
	"time"
)

// Workspace keeps the table of the resource page a session is on. Opening a
// different resource drops the previous one's state.
type Workspace struct {
	mu       sync.Mutex
	current  string
	table    any
	lastSeen time.Time
}

// Open returns the session's table for d, creating a fresh one when the
// session navigated from another resource.
func Open[T any](ws *Workspace, d Descriptor[T], stale counter) *Table[T] {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.current == d.Name {
		if t, ok := ws.table.(*Table[T]); ok {
			t.Rebind(d)
			return t
		}
	}
	t := NewTable(d, stale)
	ws.current = d.Name
	ws.table = t
	return t
}

// Current returns the name of the open resource.
func (ws *Workspace) Current() string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.current
}

// Leave drops the open resource state.
func (ws *Workspace) Leave() {
	ws.mu.Lock()
	ws.current = ""
	ws.table = nil
	ws.mu.Unlock()
}

// Registry maps session ids to workspaces and evicts idle ones.
type Registry struct {
	mu          sync.Mutex
	ttl         time.Duration
	now         func() time.Time
	spaces      map[string]*Workspace
	lastCleanup time.Time
}

// NewRegistry creates a registry. ttl <= 0 disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, now: time.Now, spaces: make(map[string]*Workspace)}
}

// Get returns the workspace of sessionID, creating it if needed.
func (r *Registry) Get(sessionID string) *Workspace {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.maybeCleanupLocked(now)

	ws := r.spaces[sessionID]
	if ws == nil {
		ws = &Workspace{}
		r.spaces[sessionID] = ws
	}
	ws.mu.Lock()
	ws.lastSeen = now
	ws.mu.Unlock()
	return ws
}

// Drop forgets the workspace of sessionID.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.spaces, sessionID)
	r.mu.Unlock()
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

func (r *Registry) maybeCleanupLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	interval := time.Minute
	if half := r.ttl / 2; half < interval {
		interval = half
	}
	if !r.lastCleanup.IsZero() && now.Sub(r.lastCleanup) < interval {
		return
	}
	r.lastCleanup = now

	for id, ws := range r.spaces {
		ws.mu.Lock()
		seen := ws.lastSeen
		ws.mu.Unlock()
		if now.Sub(seen) > r.ttl {
			delete(r.spaces, id)
		}
	}
}
