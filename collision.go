package collide

import "math"

// concentricEpsilon is the center distance at or below which two bodies are
// treated as concentric. The contact angle is undefined there, so the pair is
// left untouched for the tick.
const concentricEpsilon = 1e-9

// contact is the outcome of testing one pair.
type contact uint8

const (
	contactNone       contact = iota // bodies do not overlap
	contactResolved                  // overlap resolved as an elastic collision
	contactDegenerate                // overlap with concentric centers, skipped
)

// Collide tests b0 and b1 for overlap and, if they overlap, resolves the
// collision as a one-dimensional elastic collision along the line of centers.
// Overlapping bodies are pushed apart so their separation equals the sum of
// their radii. It reports whether the bodies were changed.
func Collide(b0, b1 *Body) bool {
	return collide(b0, b1) == contactResolved
}

func collide(b0, b1 *Body) contact {
	dx := b1.X - b0.X
	dy := b1.Y - b0.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	reach := b0.Radius + b1.Radius
	if math.IsNaN(dist) {
		return contactDegenerate
	}
	if !(dist < reach) {
		return contactNone
	}
	if dist <= concentricEpsilon {
		return contactDegenerate
	}

	// Sine and cosine of the contact angle atan2(dy, dx).
	sin := dy / dist
	cos := dx / dist

	// Rotate into the contact frame with b0 at the origin.
	var pos0 vec
	pos1 := rotate(vec{dx, dy}, sin, cos, true)
	vel0 := rotate(vec{b0.VX, b0.VY}, sin, cos, true)
	vel1 := rotate(vec{b1.VX, b1.VY}, sin, cos, true)

	relative := vel0.x - vel1.x
	vel0.x = ((b0.Mass-b1.Mass)*vel0.x + 2*b1.Mass*vel1.x) / (b0.Mass + b1.Mass)
	vel1.x = relative + vel0.x

	// Split the penetration by each body's share of the post-collision speed,
	// always pushing the pair apart.
	overlap := reach - math.Abs(pos1.x-pos0.x)
	speed0, speed1 := math.Abs(vel0.x), math.Abs(vel1.x)
	if total := speed0 + speed1; total > 0 {
		pos0.x -= speed0 / total * overlap
		pos1.x += speed1 / total * overlap
	} else {
		pos0.x -= overlap / 2
		pos1.x += overlap / 2
	}

	pos0 = rotate(pos0, sin, cos, false)
	pos1 = rotate(pos1, sin, cos, false)
	b1.X = b0.X + pos1.x
	b1.Y = b0.Y + pos1.y
	b0.X += pos0.x
	b0.Y += pos0.y

	vel0 = rotate(vel0, sin, cos, false)
	vel1 = rotate(vel1, sin, cos, false)
	b0.VX, b0.VY = vel0.x, vel0.y
	b1.VX, b1.VY = vel1.x, vel1.y

	return contactResolved
}

type vec struct {
	x, y float64
}

// rotate turns v by the contact angle. reverse rotates from world space into
// the contact frame; otherwise from the contact frame back to world space.
func rotate(v vec, sin, cos float64, reverse bool) vec {
	if reverse {
		return vec{v.x*cos + v.y*sin, v.y*cos - v.x*sin}
	}
	return vec{v.x*cos - v.y*sin, v.y*cos + v.x*sin}
}
