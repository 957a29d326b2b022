package loop

import (
	"image/color"

	"github.com/tomz197/invasion/internal/object"
	"github.com/tomz197/invasion/internal/physics"
)

// Frame is the render handoff for one tick: a read-only copy of everything a
// renderer needs. Renderers never touch the Game itself.
type Frame struct {
	Screen      object.Screen
	Background  color.RGBA
	Ship        physics.Rect
	Projectiles []physics.Rect
	Aliens      []physics.Rect

	Play     Button
	ShowPlay bool // Only while no game is active

	LivesLeft int
	Score     int
	Level     int
	Paused    bool
}

// Renderer draws frames.
type Renderer interface {
	Render(f *Frame) error
}

// Snapshot fills f with the current state, reusing its slices.
func (g *Game) Snapshot(f *Frame) {
	f.Screen = g.Screen
	f.Background = g.Settings.Background
	f.Ship = g.Ship.Rect()

	f.Projectiles = f.Projectiles[:0]
	for _, p := range g.Projectiles.Items() {
		f.Projectiles = append(f.Projectiles, p.Rect())
	}
	f.Aliens = f.Aliens[:0]
	for _, a := range g.Aliens.Items() {
		f.Aliens = append(f.Aliens, a.Rect())
	}

	f.Play = g.Play
	f.ShowPlay = !g.Stats.Active
	f.LivesLeft = g.Stats.LivesLeft
	f.Score = g.Stats.Score
	f.Level = g.Stats.Level
	f.Paused = g.pauseTicks > 0
}
