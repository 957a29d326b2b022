package loop

import (
	"github.com/tomz197/invasion/internal/object"
)

// Fleet builds the alien formation and moves it as one unit.
type Fleet struct {
	settings   *Settings
	aliens     *object.Group[*object.Alien]
	shipHeight float64
}

// NewFleet creates a fleet controller that populates aliens.
func NewFleet(s *Settings, aliens *object.Group[*object.Alien], shipHeight float64) *Fleet {
	return &Fleet{
		settings:   s,
		aliens:     aliens,
		shipHeight: shipHeight,
	}
}

// Dimensions returns the number of columns and rows of a full formation.
// Aliens are spaced one sprite apart with a one-sprite margin; three alien
// heights and the ship height are kept free at the bottom.
func (f *Fleet) Dimensions() (cols, rows int) {
	s := f.settings
	aw, ah := s.AlienWidth, s.AlienHeight
	if aw <= 0 || ah <= 0 {
		return 0, 0
	}

	cols = (s.ScreenWidth - 2*aw) / (2 * aw)
	rows = (s.ScreenHeight - 3*ah - int(f.shipHeight)) / (2 * ah)
	return max(cols, 0), max(rows, 0)
}

// Rebuild adds a full formation to the alien group and restores the fleet
// direction to its baseline. Callers clear the group first when replacing a
// formation.
func (f *Fleet) Rebuild() {
	s := f.settings
	cols, rows := f.Dimensions()
	aw, ah := float64(s.AlienWidth), float64(s.AlienHeight)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := aw + 2*aw*float64(col)
			y := ah + 2*ah*float64(row)
			f.aliens.Add(object.NewAlien(x, y, aw, ah, row, col))
		}
	}
	s.ResetFleetDirection()
}

// Advance moves the fleet one tick. If any alien touches a horizontal edge,
// the whole fleet drops and reverses before moving.
func (f *Fleet) Advance(ctx object.UpdateContext) {
	if f.atEdge(ctx.Screen) {
		f.changeDirection()
	}

	ctx.FleetDirection = f.settings.FleetDirection
	ctx.AlienSpeed = f.settings.AlienSpeed
	f.aliens.Update(ctx)
}

// atEdge reports whether any alien touches a horizontal screen bound.
func (f *Fleet) atEdge(screen object.Screen) bool {
	for _, a := range f.aliens.Items() {
		if a.AtEdge(screen) {
			return true
		}
	}
	return false
}

// changeDirection drops the entire fleet and reverses its direction.
func (f *Fleet) changeDirection() {
	for _, a := range f.aliens.Items() {
		a.Drop(f.settings.FleetDropSpeed)
	}
	f.settings.FleetDirection *= -1
}
