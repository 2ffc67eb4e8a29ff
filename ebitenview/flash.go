package ebitenview

import (
	"math"

	"github.com/phanxgames/collide"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// velocityEpsilon is the smallest velocity change treated as a contact.
const velocityEpsilon = 1e-9

// flash fades a body's highlight from 1 to 0 after a contact.
type flash struct {
	tween *gween.Tween
	level float64
	done  bool
}

func newFlash(duration float32, fn ease.TweenFunc) *flash {
	return &flash{tween: gween.New(1, 0, duration, fn), level: 1}
}

// update advances the flash by dt seconds.
func (f *flash) update(dt float32) {
	if f.done {
		return
	}
	val, finished := f.tween.Update(dt)
	f.level = float64(val)
	f.done = finished
}

// flashes tracks one flash per body index. Bodies carry no identity beyond
// their position in the snapshot, which the worker never reorders.
//
// Without forces acting between ticks a body's velocity only changes on a
// wall or body contact, so any velocity change between two snapshots starts a
// flash.
type flashes struct {
	duration float32
	fn       ease.TweenFunc

	tick   uint64
	seen   bool
	prev   []collide.Body
	active []*flash
}

func newFlashes(duration float32, fn ease.TweenFunc) *flashes {
	return &flashes{duration: duration, fn: fn}
}

// observe compares snap with the previously observed snapshot. Repeated
// observations of the same tick are ignored, so a renderer may call it every
// frame.
func (fs *flashes) observe(snap *collide.Snapshot) {
	if snap == nil || (fs.seen && snap.Tick == fs.tick) {
		return
	}
	if len(fs.active) != len(snap.Bodies) {
		fs.active = make([]*flash, len(snap.Bodies))
		fs.prev = nil
	}
	for i := range fs.prev {
		if contacted(fs.prev[i], snap.Bodies[i]) {
			fs.active[i] = newFlash(fs.duration, fs.fn)
		}
	}
	fs.prev = append(fs.prev[:0], snap.Bodies...)
	fs.tick = snap.Tick
	fs.seen = true
}

// update advances every running flash by dt seconds.
func (fs *flashes) update(dt float32) {
	for i, f := range fs.active {
		if f == nil {
			continue
		}
		f.update(dt)
		if f.done {
			fs.active[i] = nil
		}
	}
}

// level returns the highlight of body i in [0, 1].
func (fs *flashes) level(i int) float64 {
	if i < 0 || i >= len(fs.active) || fs.active[i] == nil {
		return 0
	}
	return fs.active[i].level
}

func contacted(prev, cur collide.Body) bool {
	return math.Abs(cur.VX-prev.VX) > velocityEpsilon || math.Abs(cur.VY-prev.VY) > velocityEpsilon
}
