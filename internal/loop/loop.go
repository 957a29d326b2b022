// Package loop runs the alien invasion simulation: game state, fleet
// movement, collisions and the fixed-rate terminal driver.
package loop

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/tomz197/invasion/internal/draw"
	"github.com/tomz197/invasion/internal/input"
	"github.com/tomz197/invasion/internal/loop/config"
)

// foreground is the colour of every sprite and of the UI text.
var foreground = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// Options configures a terminal session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to draw.DefaultTermSizeFunc
	Hooks        Hooks

	// Shutdown, when closed, shows a shutdown notice and ends the session
	// after config.ShutdownDisplaySeconds.
	Shutdown <-chan struct{}

	// IdleWarn and IdleTimeout default to the config inactivity limits.
	// A negative IdleTimeout disables the idle handling.
	IdleWarn    time.Duration
	IdleTimeout time.Duration

	// OnTick, if set, receives the duration of each tick (input, update and draw).
	OnTick func(time.Duration)
}

// session drives one game on one terminal.
type session struct {
	game     *Game
	frame    Frame
	renderer *termRenderer
	writer   io.Writer
	stream   *input.Stream
	opts     Options

	lastInput    time.Time
	idle         bool
	shuttingDown bool
	shutdownAt   time.Time
}

// Run plays the game on a terminal until the player quits, the input ends,
// the session idles out or a shutdown completes. Blocks for the whole session.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.IdleWarn == 0 {
		opts.IdleWarn = config.InactivityWarnUser * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = config.InactivityDisconnectUser * time.Second
	}

	settings := NewSettings(config.ViewWidth, config.ViewHeight)
	s := &session{
		game:      NewGame(settings, opts.Hooks),
		renderer:  newTermRenderer(w, opts.TermSizeFunc, settings),
		writer:    w,
		stream:    input.StartStream(r),
		opts:      opts,
		lastInput: time.Now(),
	}

	draw.SetColors(w, foreground, settings.Background)
	draw.HideCursor(w)
	draw.EnableMouse(w)
	draw.ClearScreen(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ResetColors(w)
		draw.ShowCursor(w)
		draw.ClearScreen(w)
	}()

	return s.run()
}

func (s *session) run() error {
	for {
		frameStart := time.Now()

		if !s.step(frameStart) {
			return nil
		}

		if err := s.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		elapsed := time.Since(frameStart)
		if s.opts.OnTick != nil {
			s.opts.OnTick(elapsed)
		}
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}
}

// step handles input, session timers and one simulation tick.
// Returns false when the session should end.
func (s *session) step(now time.Time) bool {
	events := s.stream.Poll(now)
	s.trackActivity(events, now)

	if s.checkShutdown(now) {
		return s.stillShuttingDown(events, now)
	}
	if s.opts.IdleTimeout > 0 && now.Sub(s.lastInput) > s.opts.IdleTimeout {
		return false
	}

	s.renderer.updateScreen()
	s.game.Tick(s.translate(events))
	return s.game.Running()
}

// trackActivity refreshes the idle timer on any input.
func (s *session) trackActivity(events []input.Event, now time.Time) {
	if len(events) > 0 {
		s.lastInput = now
		s.idle = false
		return
	}
	if s.opts.IdleTimeout > 0 && now.Sub(s.lastInput) > s.opts.IdleWarn {
		s.idle = true
	}
}

// checkShutdown reports whether the session is in its shutdown countdown,
// starting the countdown when the shutdown channel closes.
func (s *session) checkShutdown(now time.Time) bool {
	if s.shuttingDown {
		return true
	}
	select {
	case <-s.opts.Shutdown:
		s.shuttingDown = true
		s.shutdownAt = now.Add(time.Duration(config.ShutdownDisplaySeconds * float64(time.Second)))
		return true
	default:
		return false
	}
}

// stillShuttingDown keeps the notice up until the countdown ends or the
// player leaves. The simulation is frozen meanwhile.
func (s *session) stillShuttingDown(events []input.Event, now time.Time) bool {
	for _, ev := range events {
		if ev.Type == input.EventQuit || (ev.Type == input.EventKeyDown && ev.Key == input.KeyQuit) {
			return false
		}
	}
	return now.Before(s.shutdownAt)
}

// translate maps click positions from terminal cells to playfield
// coordinates. Clicks outside the playfield are dropped. Events are
// rewritten in place.
func (s *session) translate(events []input.Event) []input.Event {
	kept := events[:0]
	for _, ev := range events {
		if ev.Type == input.EventClick {
			x, y, ok := s.renderer.canvas.TerminalToLogical(int(ev.X), int(ev.Y))
			if !ok {
				continue
			}
			ev.X, ev.Y = x, y
		}
		kept = append(kept, ev)
	}
	return kept
}

func (s *session) drawFrame() error {
	s.game.Snapshot(&s.frame)

	overlay := overlayNone
	switch {
	case s.shuttingDown:
		overlay = overlayShutdown
	case s.idle:
		overlay = overlayIdle
	}
	s.renderer.overlay = overlay
	s.renderer.idleLeft = s.opts.IdleTimeout - time.Since(s.lastInput)
	s.renderer.shutdownLeft = time.Until(s.shutdownAt)

	return s.renderer.Render(&s.frame)
}
