package collide

// World is the complete simulation state: the containment bounds and the
// ordered body set. The body order fixes the order in which pairs are tested.
type World struct {
	Bounds Bounds
	Bodies []Body
}

// Clone returns a copy of w whose body slice shares no memory with w.
func (w World) Clone() World {
	return World{Bounds: w.Bounds, Bodies: CloneBodies(w.Bodies)}
}

// TickStats counts the work done by one Step.
type TickStats struct {
	Pairs      int // pairs tested
	Contacts   int // pairs resolved as collisions
	Degenerate int // overlapping pairs skipped because their centers coincide
	WallHits   int // axis corrections made by wall containment
}

// Step advances w by one tick and returns the new state. Bodies are updated in
// place, so the caller must own w.Bodies.
//
// Every body first moves by its velocity. Then every unordered pair (i < j)
// is tested and resolved in index order, and finally every body is contained
// inside the bounds.
func Step(w World) (World, TickStats) {
	var stats TickStats
	bodies := w.Bodies

	for i := range bodies {
		bodies[i].X += bodies[i].VX
		bodies[i].Y += bodies[i].VY
	}

	for i := 0; i < len(bodies)-1; i++ {
		a := &bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			stats.Pairs++
			switch collide(a, &bodies[j]) {
			case contactResolved:
				stats.Contacts++
			case contactDegenerate:
				stats.Degenerate++
			}
		}
	}

	for i := range bodies {
		stats.WallHits += Contain(&bodies[i], w.Bounds)
	}

	return w, stats
}
