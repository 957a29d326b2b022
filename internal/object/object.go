// Package object defines the simulated entities (ship, aliens, projectiles)
// and the groups that own them.
package object

import (
	"github.com/tomz197/invasion/internal/physics"
)

// Screen represents the playfield dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen creates a Screen with its center precomputed.
func NewScreen(width, height int) Screen {
	return Screen{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
	}
}

// Rect returns the playfield as a rectangle anchored at the origin.
func (s Screen) Rect() physics.Rect {
	return physics.Rect{W: float64(s.Width), H: float64(s.Height)}
}

// UpdateContext provides all the information an entity needs during update.
// Speeds are in playfield units per tick.
type UpdateContext struct {
	Screen          Screen
	ShipSpeed       float64
	ProjectileSpeed float64
	AlienSpeed      float64
	FleetDirection  float64 // -1 (left) or +1 (right)
}

// Entity is a simulated object with a bounding rectangle.
type Entity interface {
	// Rect returns the current bounding rectangle.
	Rect() physics.Rect

	// Update advances the entity by one tick. Returns true if the entity
	// should be removed from its group.
	Update(ctx UpdateContext) (remove bool)

	base() *Base
}

// Base holds the state shared by every entity kind: a float position for
// the top-left corner and the sprite size.
type Base struct {
	X, Y float64
	W, H float64

	owner any // group currently holding the entity
}

// Rect returns the bounding rectangle derived from position and sprite size.
func (b *Base) Rect() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func (b *Base) base() *Base {
	return b
}

// InGroup reports whether the entity currently belongs to a group.
func (b *Base) InGroup() bool {
	return b.owner != nil
}
