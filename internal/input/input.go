// Package input turns raw terminal bytes into discrete game input events.
package input

import (
	"bufio"
	"time"
)

// EventType identifies the kind of input event.
type EventType int

const (
	EventQuit    EventType = iota // Input source closed or the process was asked to stop
	EventKeyDown                  // A key was pressed
	EventKeyUp                    // A key was released
	EventClick                    // Primary pointer button pressed at (X, Y)
)

// Key is a game action key.
type Key int

const (
	KeyNone  Key = iota
	KeyLeft      // Move ship left
	KeyRight     // Move ship right
	KeyFire      // Fire a projectile
	KeyQuit      // Quit immediately
	KeyStart     // Press the Play button
)

// Event is a single input event. X and Y are only meaningful for EventClick.
// The Stream reports clicks in 1-based terminal cells; drivers convert them
// to playfield coordinates before handing them to the game.
type Event struct {
	Type EventType
	Key  Key
	X, Y float64
}

// Held-key emulation. Terminals report repeated presses but never releases,
// so a key counts as held until no press is seen for a while. The first
// press waits out the terminal's autorepeat delay; once repeats arrive the
// window shrinks to just above the repeat interval.
const (
	keyInitialHold = 250 * time.Millisecond
	keyRepeatHold  = 80 * time.Millisecond
)

// heldKey tracks one key that is currently considered down.
type heldKey struct {
	lastSeen  time.Time
	repeating bool
}

// Stream delivers input bytes via a channel and turns them into events.
type Stream struct {
	ch     chan byte
	closed bool
	held   map[Key]*heldKey
	buf    []byte
	events []Event
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		held: make(map[Key]*heldKey),
	}
}

// Poll drains all available bytes from the stream (non-blocking) and returns
// the resulting events in arrival order, followed by key-up events for held
// keys whose hold window expired. The returned slice is reused by the next call.
func (s *Stream) Poll(now time.Time) []Event {
	s.buf = s.buf[:0]
	s.events = s.events[:0]

	// Drain all available bytes
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	s.parse(s.buf, now)
	s.releaseExpired(now)

	if s.closed {
		s.events = append(s.events, Event{Type: EventQuit})
	}
	return s.events
}

// Reset forgets all held keys without emitting key-up events.
func (s *Stream) Reset() {
	clear(s.held)
}

// parse converts a byte batch into events.
func (s *Stream) parse(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Check for escape sequences (arrow keys, mouse reports)
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				s.press(KeyRight, now)
				i += 2
				continue
			case 'D': // Left arrow
				s.press(KeyLeft, now)
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused
				i += 2
				continue
			case '<': // SGR mouse report
				if ev, n, ok := parseSGRMouse(buf[i:]); ok {
					if ev != nil {
						s.events = append(s.events, *ev)
					}
					i += n - 1
					continue
				}
			}
		}

		if key := keyForByte(b); key != KeyNone {
			s.press(key, now)
		}
	}
}

// press records a key press. Movement keys are held; other keys are one-shot.
func (s *Stream) press(key Key, now time.Time) {
	switch key {
	case KeyLeft, KeyRight:
		if h, ok := s.held[key]; ok {
			h.lastSeen = now
			h.repeating = true
			return
		}
		s.held[key] = &heldKey{lastSeen: now}
		s.events = append(s.events, Event{Type: EventKeyDown, Key: key})
	default:
		s.events = append(s.events, Event{Type: EventKeyDown, Key: key})
	}
}

// releaseExpired emits key-up events for held keys not seen recently.
func (s *Stream) releaseExpired(now time.Time) {
	// Fixed order keeps event sequences deterministic
	for _, key := range [...]Key{KeyLeft, KeyRight} {
		h, ok := s.held[key]
		if !ok {
			continue
		}
		window := keyInitialHold
		if h.repeating {
			window = keyRepeatHold
		}
		if now.Sub(h.lastSeen) >= window || s.closed {
			delete(s.held, key)
			s.events = append(s.events, Event{Type: EventKeyUp, Key: key})
		}
	}
}

// keyForByte maps a single byte to a game key.
func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03': // q or Ctrl+C
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case ' ':
		return KeyFire
	case '\n', '\r', 'p', 'P':
		return KeyStart
	}
	return KeyNone
}

// parseSGRMouse parses an SGR mouse report "ESC [ < b ; x ; y (M|m)".
// Returns the click event (nil for reports that are not a primary-button
// press), the number of bytes consumed and whether a complete report was found.
func parseSGRMouse(buf []byte) (*Event, int, bool) {
	if len(buf) < 3 || buf[0] != '\x1b' || buf[1] != '[' || buf[2] != '<' {
		return nil, 0, false
	}

	var fields [3]int
	field := 0
	digits := 0
	for i := 3; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
			digits++
		case c == ';':
			if digits == 0 || field == 2 {
				return nil, 0, false
			}
			field++
			digits = 0
		case c == 'M' || c == 'm':
			if field != 2 || digits == 0 {
				return nil, 0, false
			}
			button := fields[0]
			// Press of the primary button without motion or wheel bits
			if c == 'M' && button&0b11 == 0 && button&(32|64) == 0 {
				return &Event{
					Type: EventClick,
					X:    float64(fields[1]),
					Y:    float64(fields[2]),
				}, i + 1, true
			}
			return nil, i + 1, true
		default:
			return nil, 0, false
		}
	}
	return nil, 0, false
}
