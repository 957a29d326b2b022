// Package server keeps track of the game sessions hosted by one process and
// coordinates their graceful shutdown. Every session runs its own game;
// sessions share nothing but the registry.
package server

import (
	"slices"
	"sync"
	"time"
)

// Observer is notified when sessions come and go.
type Observer interface {
	SessionOpened()
	SessionClosed()
}

// SessionHandle represents a registered session.
type SessionHandle struct {
	ID       int
	Username string
	Started  time.Time

	// Shutdown is closed when the server starts shutting down.
	Shutdown <-chan struct{}
}

// Registry manages the set of live sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int]*SessionHandle
	nextID   int
	observer Observer

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewRegistry creates an empty registry. observer may be nil.
func NewRegistry(observer Observer) *Registry {
	return &Registry{
		sessions: make(map[int]*SessionHandle),
		nextID:   1,
		observer: observer,
		shutdown: make(chan struct{}),
	}
}

// Register adds a session for username and returns its handle.
// Sessions registered after Shutdown see an already closed Shutdown channel.
func (r *Registry) Register(username string) *SessionHandle {
	r.mu.Lock()
	handle := &SessionHandle{
		ID:       r.nextID,
		Username: username,
		Started:  time.Now(),
		Shutdown: r.shutdown,
	}
	r.nextID++
	r.sessions[handle.ID] = handle
	r.mu.Unlock()

	if r.observer != nil {
		r.observer.SessionOpened()
	}
	return handle
}

// Unregister removes a session. Unknown IDs are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok && r.observer != nil {
		r.observer.SessionClosed()
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sessions returns a copy of the live sessions ordered by ID.
func (r *Registry) Sessions() []SessionHandle {
	r.mu.RLock()
	out := make([]SessionHandle, 0, len(r.sessions))
	for _, h := range r.sessions {
		out = append(out, *h)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b SessionHandle) int { return a.ID - b.ID })
	return out
}

// Shutdown notifies every session that the server is going down and waits
// for them to unregister, up to timeout. Returns true if all sessions left
// in time. Calling Shutdown again only waits.
func (r *Registry) Shutdown(timeout time.Duration) bool {
	r.shutdownOnce.Do(func() { close(r.shutdown) })

	if r.Len() == 0 {
		return true
	}

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return r.Len() == 0
		case <-ticker.C:
			if r.Len() == 0 {
				return true
			}
		}
	}
}
