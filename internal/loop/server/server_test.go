package server

import (
	"sync/atomic"
	"testing"
	"time"
)

type countingObserver struct {
	opened, closed atomic.Int64
}

func (o *countingObserver) SessionOpened() { o.opened.Add(1) }
func (o *countingObserver) SessionClosed() { o.closed.Add(1) }

func TestRegisterUnregister(t *testing.T) {
	obs := &countingObserver{}
	r := NewRegistry(obs)

	a := r.Register("alice")
	b := r.Register("bob")
	if a.ID == b.ID {
		t.Fatal("Expected distinct session IDs")
	}
	if r.Len() != 2 {
		t.Fatalf("Expected 2 sessions, got %d", r.Len())
	}

	sessions := r.Sessions()
	if sessions[0].Username != "alice" || sessions[1].Username != "bob" {
		t.Errorf("Expected sessions ordered by ID, got %v", sessions)
	}

	r.Unregister(a.ID)
	r.Unregister(a.ID)
	r.Unregister(999)
	if r.Len() != 1 {
		t.Errorf("Expected 1 session, got %d", r.Len())
	}
	if obs.opened.Load() != 2 || obs.closed.Load() != 1 {
		t.Errorf("Expected 2 opened and 1 closed, got %d and %d", obs.opened.Load(), obs.closed.Load())
	}
}

func TestShutdownWaitsForSessions(t *testing.T) {
	r := NewRegistry(nil)
	h := r.Register("carol")

	go func() {
		<-h.Shutdown
		time.Sleep(50 * time.Millisecond)
		r.Unregister(h.ID)
	}()

	if !r.Shutdown(2 * time.Second) {
		t.Error("Expected all sessions to leave before the timeout")
	}

	late := r.Register("dave")
	select {
	case <-late.Shutdown:
	default:
		t.Error("Expected a session registered after shutdown to see it immediately")
	}
}

func TestShutdownTimeout(t *testing.T) {
	r := NewRegistry(nil)
	r.Register("stuck")

	if r.Shutdown(50 * time.Millisecond) {
		t.Error("Expected shutdown to report sessions left behind")
	}
	// A second call must not panic on the closed channel
	r.Shutdown(10 * time.Millisecond)
}

func TestShutdownEmpty(t *testing.T) {
	if !NewRegistry(nil).Shutdown(time.Second) {
		t.Error("Expected empty registry to shut down immediately")
	}
}
