package object

import "testing"

func testScreen() Screen {
	return NewScreen(1200, 800)
}

func TestGroupAddRemove(t *testing.T) {
	g := NewGroup[*Alien]()
	a := NewAlien(0, 0, 10, 10, 0, 0)
	b := NewAlien(20, 0, 10, 10, 0, 1)

	if !g.Add(a) || !g.Add(b) {
		t.Fatal("Expected both adds to succeed")
	}
	if g.Add(a) {
		t.Error("Expected duplicate add to be refused")
	}
	if g.Len() != 2 {
		t.Fatalf("Expected 2 members, got %d", g.Len())
	}

	if !g.Remove(a) {
		t.Error("Expected remove of member to succeed")
	}
	if g.Remove(a) {
		t.Error("Expected second remove to be a no-op")
	}
	if g.Len() != 1 || g.Items()[0] != b {
		t.Errorf("Expected only b to remain, got %d items", g.Len())
	}
	if !g.Has(b) || g.Has(a) {
		t.Error("Has reports wrong membership")
	}
}

func TestGroupRejectsSecondOwner(t *testing.T) {
	first := NewGroup[*Projectile]()
	second := NewGroup[*Projectile]()
	p := NewProjectile(10, 10, 3, 15)

	first.Add(p)
	if second.Add(p) {
		t.Fatal("Expected entity already in a group to be refused")
	}

	first.Remove(p)
	if !second.Add(p) {
		t.Error("Expected entity to be accepted after leaving its group")
	}
}

func TestGroupClearIdempotent(t *testing.T) {
	g := NewGroup[*Alien]()
	g.Clear()
	if g.Len() != 0 {
		t.Fatalf("Expected empty group, got %d", g.Len())
	}

	a := NewAlien(0, 0, 10, 10, 0, 0)
	g.Add(a)
	g.Clear()
	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Expected empty group after clear, got %d", g.Len())
	}
	if a.InGroup() {
		t.Error("Expected cleared entity to be released")
	}
}

func TestGroupRemoveFuncKeepsOrder(t *testing.T) {
	g := NewGroup[*Alien]()
	var all []*Alien
	for i := 0; i < 6; i++ {
		a := NewAlien(float64(i*20), 0, 10, 10, 0, i)
		all = append(all, a)
		g.Add(a)
	}

	removed := g.RemoveFunc(func(a *Alien) bool { return a.Col%2 == 0 })
	if removed != 3 {
		t.Fatalf("Expected 3 removed, got %d", removed)
	}

	want := []int{1, 3, 5}
	for i, a := range g.Items() {
		if a.Col != want[i] {
			t.Errorf("Expected col %d at position %d, got %d", want[i], i, a.Col)
		}
	}

	// Index must stay consistent after compaction
	if !g.Remove(all[5]) || g.Len() != 2 {
		t.Error("Expected remove after compaction to succeed")
	}
}

func TestProjectilePrunedPastTop(t *testing.T) {
	g := NewGroup[*Projectile]()
	p := NewProjectile(100, 20, 3, 15)
	g.Add(p)

	ctx := UpdateContext{Screen: testScreen(), ProjectileSpeed: 10}
	g.Update(ctx) // y=10, bottom=25
	if g.Len() != 1 {
		t.Fatal("Expected projectile to survive first update")
	}
	g.Update(ctx) // y=0, bottom=15
	g.Update(ctx) // y=-10, bottom=5
	if g.Len() != 1 {
		t.Fatal("Expected projectile to survive while its bottom is on screen")
	}
	g.Update(ctx) // y=-20, bottom=-5
	if g.Len() != 0 {
		t.Errorf("Expected projectile to be pruned, %d remain", g.Len())
	}
}

func TestShipStaysOnScreen(t *testing.T) {
	screen := testScreen()
	s := NewShip(60, 48, screen)

	if s.X != 570 || s.Y != 752 {
		t.Fatalf("Expected centered ship at (570,752), got (%v,%v)", s.X, s.Y)
	}

	ctx := UpdateContext{Screen: screen, ShipSpeed: 100}
	s.MovingRight = true
	for i := 0; i < 20; i++ {
		s.Update(ctx)
	}
	if s.Rect().Right() != 1200 {
		t.Errorf("Expected ship clamped at right edge, right=%v", s.Rect().Right())
	}

	s.MovingRight = false
	s.MovingLeft = true
	for i := 0; i < 20; i++ {
		s.Update(ctx)
	}
	if s.X != 0 {
		t.Errorf("Expected ship clamped at left edge, x=%v", s.X)
	}
}

func TestShipMidTop(t *testing.T) {
	s := NewShip(60, 48, testScreen())
	x, y := s.MidTop()
	if x != 600 || y != 752 {
		t.Errorf("Expected mid-top (600,752), got (%v,%v)", x, y)
	}

	p := NewProjectile(x, y, 3, 15)
	if p.Rect().CenterX() != 600 || p.Y != 752 {
		t.Errorf("Expected projectile centered on ship top, got %+v", p.Rect())
	}
}

func TestAlienEdges(t *testing.T) {
	screen := testScreen()
	tests := []struct {
		x    float64
		want bool
	}{
		{0, true},
		{-1, true},
		{1, false},
		{1160, true},
		{1159, false},
	}
	for _, tt := range tests {
		a := NewAlien(tt.x, 100, 40, 40, 0, 0)
		if got := a.AtEdge(screen); got != tt.want {
			t.Errorf("AtEdge(x=%v) = %v, expected %v", tt.x, got, tt.want)
		}
	}

	a := NewAlien(100, 760, 40, 40, 0, 0)
	if !a.AtBottom(screen) {
		t.Error("Expected alien touching the bottom to report AtBottom")
	}
}
