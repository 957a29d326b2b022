package object

// Member constrains group elements to comparable entity handles (pointers).
type Member interface {
	comparable
	Entity
}

// Group is an identity-keyed collection of live entities of one kind.
// Iteration follows insertion order so that updates and collision passes are
// deterministic. An entity belongs to at most one group at a time.
type Group[T Member] struct {
	items []T
	index map[T]int
}

// NewGroup creates an empty group.
func NewGroup[T Member]() *Group[T] {
	return &Group[T]{
		index: make(map[T]int),
	}
}

// Len returns the number of entities in the group.
func (g *Group[T]) Len() int {
	return len(g.items)
}

// Items returns the live entities in insertion order.
// The slice is only valid until the group is next modified.
func (g *Group[T]) Items() []T {
	return g.items
}

// Has reports whether e is a member of the group.
func (g *Group[T]) Has(e T) bool {
	_, ok := g.index[e]
	return ok
}

// Add inserts e. Returns false if e already belongs to this or another group.
func (g *Group[T]) Add(e T) bool {
	b := e.base()
	if b.owner != nil {
		return false
	}
	b.owner = g
	g.index[e] = len(g.items)
	g.items = append(g.items, e)
	return true
}

// Remove deletes e from the group. Removing an absent entity is a no-op
// and returns false.
func (g *Group[T]) Remove(e T) bool {
	i, ok := g.index[e]
	if !ok {
		return false
	}
	copy(g.items[i:], g.items[i+1:])
	var zero T
	g.items[len(g.items)-1] = zero
	g.items = g.items[:len(g.items)-1]
	delete(g.index, e)
	e.base().owner = nil
	g.reindex(i)
	return true
}

// RemoveFunc deletes every entity for which pred returns true, keeping the
// order of the survivors. Returns the number of removed entities.
func (g *Group[T]) RemoveFunc(pred func(T) bool) int {
	kept := g.items[:0] // reuse backing array
	removed := 0
	for _, e := range g.items {
		if pred(e) {
			delete(g.index, e)
			e.base().owner = nil
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0
	}
	var zero T
	for i := len(kept); i < len(g.items); i++ {
		g.items[i] = zero
	}
	g.items = kept
	g.reindex(0)
	return removed
}

// Update advances every entity by one tick and removes those that ask to be
// removed.
func (g *Group[T]) Update(ctx UpdateContext) int {
	return g.RemoveFunc(func(e T) bool {
		return e.Update(ctx)
	})
}

// Clear removes every entity. Clearing an empty group is a no-op.
func (g *Group[T]) Clear() {
	if len(g.items) == 0 {
		return
	}
	var zero T
	for i, e := range g.items {
		e.base().owner = nil
		g.items[i] = zero
	}
	g.items = g.items[:0]
	clear(g.index)
}

func (g *Group[T]) reindex(from int) {
	for i := from; i < len(g.items); i++ {
		g.index[g.items[i]] = i
	}
}
