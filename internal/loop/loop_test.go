package loop

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomz197/invasion/internal/input"
	"github.com/tomz197/invasion/internal/loop/config"
)

func fixedTermSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// syncBuffer is a bytes.Buffer safe to read while Run is writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runAsync(r *bufio.Reader, w io.Writer, opts Options) <-chan error {
	done := make(chan error, 1)
	go func() { done <- Run(r, w, opts) }()
	return done
}

func waitRun(t *testing.T, done <-chan error, timeout time.Duration) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(timeout):
		t.Fatal("Run did not return in time")
	}
}

func TestFitTermSize(t *testing.T) {
	tests := []struct {
		name                 string
		termW, termH         int
		wantW, wantH         int
		wantOffCol, wantOffR int
	}{
		{"exact", 120, 40, 120, 40, 0, 0},
		{"wide", 200, 40, 120, 40, 40, 0},
		{"tall", 90, 60, 90, 30, 0, 15},
		{"clamped", 300, 100, 240, 80, 30, 10},
		{"tiny", 1, 1, 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := fitTermSize(tt.termW, tt.termH, config.ViewWidth, config.ViewHeight)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffR {
				t.Errorf("Expected %dx%d at (%d,%d), got %dx%d at (%d,%d)",
					tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffR, w, h, oc, or)
			}
		})
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	var out syncBuffer
	done := runAsync(bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedTermSize(120, 40),
	})
	waitRun(t, done, 2*time.Second)

	s := out.String()
	if !strings.Contains(s, "\033[?25l") || !strings.Contains(s, "\033[?25h") {
		t.Error("Expected cursor to be hidden and restored")
	}
	if !strings.Contains(s, "\033[?1006h") || !strings.Contains(s, "\033[?1006l") {
		t.Error("Expected mouse reporting to be enabled and disabled")
	}
}

func TestRunDrawsStartScreen(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out syncBuffer
	done := runAsync(bufio.NewReader(pr), &out, Options{TermSizeFunc: fixedTermSize(120, 40)})

	time.Sleep(100 * time.Millisecond)
	if _, err := pw.Write([]byte("q")); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitRun(t, done, 2*time.Second)

	s := out.String()
	if !strings.Contains(s, config.ButtonLabel) {
		t.Error("Expected the Play button label")
	}
	if !strings.Contains(s, "Score: 0") {
		t.Error("Expected the HUD")
	}
}

func TestRunIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out syncBuffer
	var ticks atomic.Int64
	done := runAsync(bufio.NewReader(pr), &out, Options{
		TermSizeFunc: fixedTermSize(120, 40),
		IdleWarn:     20 * time.Millisecond,
		IdleTimeout:  150 * time.Millisecond,
		OnTick:       func(time.Duration) { ticks.Add(1) },
	})
	waitRun(t, done, 2*time.Second)

	if ticks.Load() == 0 {
		t.Error("Expected OnTick to be called")
	}

	if !strings.Contains(out.String(), "INACTIVITY WARNING") {
		t.Error("Expected the inactivity warning before disconnect")
	}
}

func TestRunShutdownNotice(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	shutdown := make(chan struct{})
	close(shutdown)

	var out syncBuffer
	done := runAsync(bufio.NewReader(pr), &out, Options{
		TermSizeFunc: fixedTermSize(120, 40),
		Shutdown:     shutdown,
	})

	time.Sleep(100 * time.Millisecond)
	if _, err := pw.Write([]byte("q")); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitRun(t, done, 2*time.Second)

	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Error("Expected the shutdown notice")
	}
}

func TestClickTranslatedToPlayfield(t *testing.T) {
	settings := NewSettings(config.ViewWidth, config.ViewHeight)
	s := &session{
		game:     NewGame(settings, Hooks{}),
		renderer: newTermRenderer(io.Discard, fixedTermSize(200, 40), settings),
	}

	// Canvas is 120x40 centered with 40 columns on each side
	events := s.translate([]input.Event{
		{Type: input.EventClick, X: 10, Y: 20}, // Left margin
		{Type: input.EventClick, X: 101, Y: 21},
	})
	if len(events) != 1 {
		t.Fatalf("Expected margin click to be dropped, got %d events", len(events))
	}

	s.game.Tick(events)
	if !s.game.Active() {
		t.Errorf("Expected click on Play to start the game, got (%v, %v)", events[0].X, events[0].Y)
	}
}
