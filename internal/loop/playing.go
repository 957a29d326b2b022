package loop

import (
	"github.com/tomz197/invasion/internal/input"
	"github.com/tomz197/invasion/internal/object"
)

// Tick runs one simulation step: dispatch every pending event, then advance
// the simulation if a game is active and not paused. Rendering is left to
// the caller, which must render after every tick regardless of state.
//
// A quit event stops processing immediately; Running reports false afterwards.
func (g *Game) Tick(events []input.Event) {
	for _, ev := range events {
		g.HandleEvent(ev)
		if !g.running {
			return
		}
	}

	if !g.Stats.Active {
		return
	}
	if g.pauseTicks > 0 {
		g.pauseTicks--
		return
	}
	g.update()
}

// HandleEvent applies a single input event.
func (g *Game) HandleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		g.Quit()
	case input.EventKeyDown:
		g.handleKeyDown(ev.Key)
	case input.EventKeyUp:
		g.handleKeyUp(ev.Key)
	case input.EventClick:
		g.TryStart(ev.X, ev.Y)
	}
}

func (g *Game) handleKeyDown(key input.Key) {
	switch key {
	case input.KeyRight:
		g.Ship.MovingRight = true
	case input.KeyLeft:
		g.Ship.MovingLeft = true
	case input.KeyQuit:
		g.Quit()
	case input.KeyFire:
		g.FireProjectile()
	case input.KeyStart:
		// Keyboard shortcut for clicking the Play button
		g.TryStart(g.Play.Rect.CenterX(), g.Play.Rect.CenterY())
	}
}

func (g *Game) handleKeyUp(key input.Key) {
	switch key {
	case input.KeyRight:
		g.Ship.MovingRight = false
	case input.KeyLeft:
		g.Ship.MovingLeft = false
	}
}

// FireProjectile spawns a projectile at the ship's nose if fewer than the
// allowed number are in flight. Extra shots are dropped, not queued.
// Returns true if a projectile was fired.
func (g *Game) FireProjectile() bool {
	if !g.Stats.Active || g.Projectiles.Len() >= g.Settings.BulletsAllowed {
		return false
	}
	x, y := g.Ship.MidTop()
	p := object.NewProjectile(x, y, float64(g.Settings.BulletWidth), float64(g.Settings.BulletHeight))
	return g.Projectiles.Add(p)
}

// update advances the ship, projectiles and fleet, then resolves collisions.
func (g *Game) update() {
	ctx := g.updateContext()

	g.Ship.Update(ctx)
	g.Projectiles.Update(ctx)
	g.Fleet.Advance(ctx)
	g.checkCollisions()
}
