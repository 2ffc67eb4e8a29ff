package collide

import "time"

// debugLog prints one tick's stats and step time. Only called when
// Config.Debug is set.
func (w *Worker) debugLog(tick uint64, stats TickStats, elapsed time.Duration) {
	if !w.cfg.Debug {
		return
	}
	w.log.Printf("tick %d: step %v | pairs: %d | contacts: %d | degenerate: %d | walls: %d | dropped: %d",
		tick, elapsed, stats.Pairs, stats.Contacts, stats.Degenerate, stats.WallHits, w.dropped.Load())
}

// debugCheckEscaped warns when a body is still outside the bounds after
// containment, which only happens when it is wider than the world.
func (w *Worker) debugCheckEscaped(world World) {
	if !w.cfg.Debug {
		return
	}
	for i := range world.Bodies {
		if !world.Bounds.Contains(world.Bodies[i]) {
			w.log.Printf("warning: body %d (radius %v) does not fit in %vx%v",
				i, world.Bodies[i].Radius, world.Bounds.Width, world.Bounds.Height)
		}
	}
}
