package object

// Projectile is a bullet fired by the ship. It travels straight up.
type Projectile struct {
	Base
}

// NewProjectile creates a projectile of the given size whose top edge is
// centered on (x, y).
func NewProjectile(x, y, width, height float64) *Projectile {
	return &Projectile{
		Base: Base{X: x - width/2, Y: y, W: width, H: height},
	}
}

// Update moves the projectile up. Returns true once it has left the top of
// the screen.
func (p *Projectile) Update(ctx UpdateContext) bool {
	p.Y -= ctx.ProjectileSpeed
	return p.Y+p.H <= 0
}
