package loop

import (
	"github.com/tomz197/invasion/internal/object"
)

// collisionCellSize picks a broad-phase cell large enough that an alien
// spans at most a 2×2 block of cells.
func collisionCellSize(s *Settings) float64 {
	return float64(max(s.AlienWidth, s.AlienHeight, 1))
}

// checkCollisions runs the collision pass for one active tick.
// The order of the checks is significant: a projectile that destroys an
// alien touching the ship saves the ship on the same tick.
func (g *Game) checkCollisions() {
	if hits := g.checkProjectileAlienCollisions(); hits > 0 {
		g.Stats.Score += hits * g.Settings.AlienPoints
	}

	if g.Aliens.Len() == 0 {
		g.formationCleared()
	}

	// Player collisions; a hit rebuilds the fleet, so skip remaining checks
	if g.checkShipAlienCollisions() {
		return
	}
	g.checkAliensBottom()
}

// checkProjectileAlienCollisions removes every projectile that overlaps an
// alien together with the first such alien. Each projectile destroys at most
// one alien and each alien is destroyed at most once. Returns the number of
// removed pairs.
func (g *Game) checkProjectileAlienCollisions() int {
	aliens := g.Aliens.Items()
	projectiles := g.Projectiles.Items()
	if len(aliens) == 0 || len(projectiles) == 0 {
		return 0
	}

	g.alienGrid.Clear()
	for i, a := range aliens {
		g.alienGrid.Insert(a.Rect(), i)
	}
	if cap(g.alienRemoved) < len(aliens) {
		g.alienRemoved = make([]bool, len(aliens))
	}
	removed := g.alienRemoved[:len(aliens)]
	clear(removed)

	if cap(g.projectileSpent) < len(projectiles) {
		g.projectileSpent = make([]bool, len(projectiles))
	}
	spent := g.projectileSpent[:len(projectiles)]
	clear(spent)

	hits := 0
	for pi, p := range projectiles {
		pr := p.Rect()

		// Lowest index wins so the pairing does not depend on grid layout
		target := -1
		g.alienGrid.Query(pr, func(idx int) bool {
			if !removed[idx] && (target < 0 || idx < target) && aliens[idx].Rect().Intersects(pr) {
				target = idx
			}
			return false
		})
		if target < 0 {
			continue
		}

		removed[target] = true
		spent[pi] = true
		hits++
	}
	if hits == 0 {
		return 0
	}

	// RemoveFunc visits members in order, so a running index lines up
	// with the flags collected above
	pi := 0
	g.Projectiles.RemoveFunc(func(*object.Projectile) bool {
		gone := spent[pi]
		pi++
		return gone
	})
	ai := 0
	g.Aliens.RemoveFunc(func(*object.Alien) bool {
		gone := removed[ai]
		ai++
		return gone
	})
	return hits
}

// formationCleared replaces a destroyed fleet with a new, faster one.
func (g *Game) formationCleared() {
	g.Projectiles.Clear()
	g.Fleet.Rebuild()
	g.Settings.IncreaseSpeed()
	g.Stats.Level++

	if g.hooks.FormationCleared != nil {
		g.hooks.FormationCleared(g.Stats.Level)
	}
}

// checkShipAlienCollisions handles an alien ramming the ship.
// Returns true if the ship was hit.
func (g *Game) checkShipAlienCollisions() bool {
	sr := g.Ship.Rect()
	for _, a := range g.Aliens.Items() {
		if a.Rect().Intersects(sr) {
			g.ShipHit()
			return true
		}
	}
	return false
}

// checkAliensBottom treats an alien reaching the bottom like a ship hit.
// The first offender is enough.
func (g *Game) checkAliensBottom() bool {
	for _, a := range g.Aliens.Items() {
		if a.AtBottom(g.Screen) {
			g.ShipHit()
			return true
		}
	}
	return false
}

// ShipHit loses a life. While ships remain the board is reset and the
// simulation pauses briefly; losing the last ship ends the game.
func (g *Game) ShipHit() {
	if g.Stats.LivesLeft > 0 {
		g.Stats.LivesLeft--
	}

	if g.hooks.ShipHit != nil {
		g.hooks.ShipHit(g.Stats.LivesLeft)
	}

	if g.Stats.LivesLeft > 0 {
		g.Aliens.Clear()
		g.Projectiles.Clear()
		g.Fleet.Rebuild()
		g.Ship.Center(g.Screen)
		g.pauseTicks = g.Settings.HitPauseTicks
		return
	}

	g.Stats.Active = false
	g.pauseTicks = 0
	if g.hooks.GameOver != nil {
		g.hooks.GameOver(g.Stats.Score)
	}
}
