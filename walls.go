package collide

// Bounce is the factor applied to a velocity component when a body hits a
// wall. A magnitude of 1 keeps wall contacts perfectly elastic.
const Bounce = -1.0

// Contain clamps b inside bounds. On each axis, a body whose edge is past a
// wall is moved so the edge touches the wall and its velocity on that axis is
// multiplied by Bounce. Both axes are checked independently. It returns the
// number of axes corrected (0, 1 or 2).
func Contain(b *Body, bounds Bounds) int {
	hits := 0
	if b.X+b.Radius > bounds.Width {
		b.X = bounds.Width - b.Radius
		b.VX *= Bounce
		hits++
	} else if b.X-b.Radius < 0 {
		b.X = b.Radius
		b.VX *= Bounce
		hits++
	}
	if b.Y+b.Radius > bounds.Height {
		b.Y = bounds.Height - b.Radius
		b.VY *= Bounce
		hits++
	} else if b.Y-b.Radius < 0 {
		b.Y = b.Radius
		b.VY *= Bounce
		hits++
	}
	return hits
}
