package loop

import (
	"github.com/tomz197/invasion/internal/loop/config"
	"github.com/tomz197/invasion/internal/object"
	"github.com/tomz197/invasion/internal/physics"
)

// Stats tracks the progress of the current game.
type Stats struct {
	LivesLeft int  // Ships remaining, including the one in play
	Active    bool // Whether a game is running
	Score     int
	Level     int // Formations cleared this game
}

// Reset restores the per-game statistics. Active is left untouched.
func (s *Stats) Reset(shipLimit int) {
	s.LivesLeft = shipLimit
	s.Score = 0
	s.Level = 0
}

// Button is the clickable Play control shown while no game is active.
type Button struct {
	Rect  physics.Rect
	Label string
}

// NewButton creates a button of size w×h centered on the screen.
func NewButton(screen object.Screen, w, h float64, label string) Button {
	return Button{
		Rect:  physics.CenteredAt(float64(screen.Width)/2, float64(screen.Height)/2, w, h),
		Label: label,
	}
}

// Hooks receives lifecycle notifications from a Game. Nil fields are skipped.
// Hooks run synchronously on the tick goroutine and must not call back into
// the Game.
type Hooks struct {
	GameStarted      func()
	FormationCleared func(level int)
	ShipHit          func(livesLeft int)
	GameOver         func(score int)
}

// Game owns the complete simulation state: settings, statistics, the ship
// and the entity groups. Every component works on the Game it belongs to;
// there is no package-level state.
type Game struct {
	Settings    *Settings
	Stats       Stats
	Screen      object.Screen
	Ship        *object.Ship
	Projectiles *object.Group[*object.Projectile]
	Aliens      *object.Group[*object.Alien]
	Fleet       *Fleet
	Play        Button

	hooks      Hooks
	running    bool
	pauseTicks int // Remaining ticks of the post-hit pause

	// Reusable broad-phase state for the collision pass
	alienGrid       *physics.SpatialGrid
	alienRemoved    []bool
	projectileSpent []bool
}

// NewGame creates an inactive game for the given settings. The first
// formation is built immediately so it is visible behind the Play button.
func NewGame(s *Settings, hooks Hooks) *Game {
	screen := object.NewScreen(s.ScreenWidth, s.ScreenHeight)
	g := &Game{
		Settings:    s,
		Screen:      screen,
		Ship:        object.NewShip(float64(s.ShipWidth), float64(s.ShipHeight), screen),
		Projectiles: object.NewGroup[*object.Projectile](),
		Aliens:      object.NewGroup[*object.Alien](),
		Play:        NewButton(screen, config.ButtonWidth, config.ButtonHeight, config.ButtonLabel),
		hooks:       hooks,
		running:     true,
		alienGrid:   physics.NewSpatialGrid(float64(s.ScreenWidth), float64(s.ScreenHeight), collisionCellSize(s)),
	}
	g.Stats.Reset(s.ShipLimit)
	g.Fleet = NewFleet(s, g.Aliens, float64(s.ShipHeight))
	g.Fleet.Rebuild()
	return g
}

// Running reports whether the game loop should keep going.
// It turns false once a quit event has been handled.
func (g *Game) Running() bool {
	return g.running
}

// Active reports whether a game is in progress.
func (g *Game) Active() bool {
	return g.Stats.Active
}

// Paused reports whether the simulation is frozen after a ship hit.
func (g *Game) Paused() bool {
	return g.pauseTicks > 0
}

// Quit stops the loop. The current tick ends without further updates.
func (g *Game) Quit() {
	g.running = false
}

// TryStart starts a new game when no game is active and (x, y) is inside
// the Play button. Returns true if a game was started.
func (g *Game) TryStart(x, y float64) bool {
	if g.Stats.Active || !g.Play.Rect.Contains(x, y) {
		return false
	}

	g.Settings.InitializeDynamic()
	g.Stats.Reset(g.Settings.ShipLimit)
	g.Stats.Active = true
	g.pauseTicks = 0

	g.Aliens.Clear()
	g.Projectiles.Clear()
	g.Fleet.Rebuild()
	g.Ship.Center(g.Screen)

	if g.hooks.GameStarted != nil {
		g.hooks.GameStarted()
	}
	return true
}

// updateContext creates an UpdateContext from the current settings.
func (g *Game) updateContext() object.UpdateContext {
	return object.UpdateContext{
		Screen:          g.Screen,
		ShipSpeed:       g.Settings.ShipSpeed,
		ProjectileSpeed: g.Settings.BulletSpeed,
		AlienSpeed:      g.Settings.AlienSpeed,
		FleetDirection:  g.Settings.FleetDirection,
	}
}
