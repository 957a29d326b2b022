package input

import (
	"testing"
	"time"
)

// feed pushes bytes into a stream without a reader goroutine.
func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestPollKeyDownAndUp(t *testing.T) {
	s := newStream()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	feed(s, "d")
	events := s.Poll(start)
	if len(events) != 1 || events[0] != (Event{Type: EventKeyDown, Key: KeyRight}) {
		t.Fatalf("Expected single KeyRight down, got %+v", events)
	}

	// Still within the initial hold window: no release
	if events := s.Poll(start.Add(100 * time.Millisecond)); len(events) != 0 {
		t.Fatalf("Expected no events while held, got %+v", events)
	}

	events = s.Poll(start.Add(keyInitialHold))
	if len(events) != 1 || events[0] != (Event{Type: EventKeyUp, Key: KeyRight}) {
		t.Fatalf("Expected KeyRight up after hold window, got %+v", events)
	}
}

func TestPollRepeatDoesNotRepress(t *testing.T) {
	s := newStream()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	feed(s, "a")
	s.Poll(start)

	// Autorepeat bytes keep the key held without a new key-down
	now := start
	for i := 0; i < 5; i++ {
		now = now.Add(30 * time.Millisecond)
		feed(s, "a")
		if events := s.Poll(now); len(events) != 0 {
			t.Fatalf("Expected repeats to be absorbed, got %+v", events)
		}
	}

	// Once repeating, the shorter window applies
	events := s.Poll(now.Add(keyRepeatHold))
	if len(events) != 1 || events[0].Type != EventKeyUp || events[0].Key != KeyLeft {
		t.Errorf("Expected KeyLeft up after repeat window, got %+v", events)
	}
}

func TestPollArrowKeys(t *testing.T) {
	s := newStream()
	now := time.Now()

	feed(s, "\x1b[C\x1b[D\x1b[A")
	events := s.Poll(now)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %+v", events)
	}
	if events[0].Key != KeyRight || events[1].Key != KeyLeft {
		t.Errorf("Expected right then left, got %+v", events)
	}
}

func TestPollOneShotKeys(t *testing.T) {
	s := newStream()
	feed(s, "  q\r")
	events := s.Poll(time.Now())

	want := []Key{KeyFire, KeyFire, KeyQuit, KeyStart}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %+v", len(want), events)
	}
	for i, k := range want {
		if events[i].Type != EventKeyDown || events[i].Key != k {
			t.Errorf("Event %d: expected key-down %v, got %+v", i, k, events[i])
		}
	}
}

func TestPollMouseClick(t *testing.T) {
	s := newStream()
	// Left press, left release, motion with button held, right press
	feed(s, "\x1b[<0;12;7M\x1b[<0;12;7m\x1b[<32;13;7M\x1b[<2;5;5M")
	events := s.Poll(time.Now())

	if len(events) != 1 {
		t.Fatalf("Expected exactly one click, got %+v", events)
	}
	if events[0] != (Event{Type: EventClick, X: 12, Y: 7}) {
		t.Errorf("Expected click at (12,7), got %+v", events[0])
	}
}

func TestPollClosedStreamQuits(t *testing.T) {
	s := newStream()
	now := time.Now()
	feed(s, "d")
	s.Poll(now)

	close(s.ch)
	events := s.Poll(now.Add(time.Millisecond))

	if len(events) != 2 {
		t.Fatalf("Expected key-up and quit, got %+v", events)
	}
	if events[0] != (Event{Type: EventKeyUp, Key: KeyRight}) {
		t.Errorf("Expected held key released first, got %+v", events[0])
	}
	if events[1].Type != EventQuit {
		t.Errorf("Expected quit event, got %+v", events[1])
	}
}

func TestParseSGRMouseIncomplete(t *testing.T) {
	if _, _, ok := parseSGRMouse([]byte("\x1b[<0;12")); ok {
		t.Error("Expected incomplete report to be rejected")
	}
	if _, _, ok := parseSGRMouse([]byte("\x1b[<0;;3M")); ok {
		t.Error("Expected empty field to be rejected")
	}
}
