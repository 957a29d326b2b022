package object

// Ship is the player-controlled cannon at the bottom of the playfield.
// It only moves horizontally, driven by its motion flags.
type Ship struct {
	Base

	MovingLeft  bool
	MovingRight bool
}

// NewShip creates a ship of the given sprite size centered at the bottom of screen.
func NewShip(width, height float64, screen Screen) *Ship {
	s := &Ship{Base: Base{W: width, H: height}}
	s.Center(screen)
	return s
}

// Center places the ship's bottom edge on the bottom of the screen,
// horizontally centered.
func (s *Ship) Center(screen Screen) {
	s.X = float64(screen.Width)/2 - s.W/2
	s.Y = float64(screen.Height) - s.H
}

// MidTop returns the center of the ship's top edge, where projectiles spawn.
func (s *Ship) MidTop() (x, y float64) {
	return s.X + s.W/2, s.Y
}

// Update moves the ship according to its motion flags, keeping it on screen.
// The ship is never removed.
func (s *Ship) Update(ctx UpdateContext) bool {
	if s.MovingRight && s.X+s.W < float64(ctx.Screen.Width) {
		s.X += ctx.ShipSpeed
	}
	if s.MovingLeft && s.X > 0 {
		s.X -= ctx.ShipSpeed
	}

	// Clamp to horizontal bounds
	if maxX := float64(ctx.Screen.Width) - s.W; s.X > maxX {
		s.X = maxX
	}
	if s.X < 0 {
		s.X = 0
	}
	return false
}
