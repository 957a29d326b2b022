package object

// Alien is one member of the invading fleet. Aliens have no individual
// motion state; they move by the fleet-wide direction.
type Alien struct {
	Base

	Row, Col int // Grid cell the alien was spawned in
}

// NewAlien creates an alien of the given sprite size at (x, y).
func NewAlien(x, y, width, height float64, row, col int) *Alien {
	return &Alien{
		Base: Base{X: x, Y: y, W: width, H: height},
		Row:  row,
		Col:  col,
	}
}

// AtEdge reports whether the alien touches or passes a horizontal screen bound.
func (a *Alien) AtEdge(screen Screen) bool {
	return a.X <= 0 || a.X+a.W >= float64(screen.Width)
}

// AtBottom reports whether the alien reached the bottom of the screen.
func (a *Alien) AtBottom(screen Screen) bool {
	return a.Y+a.H >= float64(screen.Height)
}

// Drop moves the alien down by dy.
func (a *Alien) Drop(dy float64) {
	a.Y += dy
}

// Update moves the alien sideways in the fleet direction. Aliens are only
// removed by collisions, never by their own update.
func (a *Alien) Update(ctx UpdateContext) bool {
	a.X += ctx.AlienSpeed * ctx.FleetDirection
	return false
}
