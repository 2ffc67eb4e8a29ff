package collide

import (
	"fmt"
	"math"
)

// Body is a circular point mass. Position and velocity are in world units and
// world units per tick. Coordinates have their origin at the top-left, with Y
// increasing downward.
type Body struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`
}

// MaxMagnitude bounds every body field. Sums and squares of values in range
// stay finite, so a tick cannot overflow into Inf or NaN.
const MaxMagnitude = 1e150

// Validate reports whether b can take part in a simulation: every field must
// be finite with magnitude at most MaxMagnitude, and radius and mass must be
// positive.
func (b Body) Validate() error {
	if !finite(b.X, b.Y, b.VX, b.VY, b.Radius, b.Mass) {
		return fmt.Errorf("%w: non-finite field in %+v", ErrInvalidBody, b)
	}
	if !inRange(b.X, b.Y, b.VX, b.VY, b.Radius, b.Mass) {
		return fmt.Errorf("%w: field exceeds %g in %+v", ErrInvalidBody, MaxMagnitude, b)
	}
	if b.Radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidBody, b.Radius)
	}
	if b.Mass <= 0 {
		return fmt.Errorf("%w: mass %v must be positive", ErrInvalidBody, b.Mass)
	}
	return nil
}

// ValidateBodies validates each body and reports the first failure with its
// index.
func ValidateBodies(bodies []Body) error {
	for i := range bodies {
		if err := bodies[i].Validate(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	return nil
}

// CloneBodies returns a copy of bodies that shares no memory with the input.
// A nil slice stays nil.
func CloneBodies(bodies []Body) []Body {
	if bodies == nil {
		return nil
	}
	out := make([]Body, len(bodies))
	copy(out, bodies)
	return out
}

// Bounds is the containment rectangle anchored at the origin.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate reports whether both dimensions are finite and positive.
func (b Bounds) Validate() error {
	if !finite(b.Width, b.Height) || !inRange(b.Width, b.Height) || b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidBounds, b.Width, b.Height)
	}
	return nil
}

// Contains reports whether the body lies entirely inside the bounds.
// Edges touching the bounds are considered inside.
func (b Bounds) Contains(body Body) bool {
	return body.X-body.Radius >= 0 && body.X+body.Radius <= b.Width &&
		body.Y-body.Radius >= 0 && body.Y+body.Radius <= b.Height
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func inRange(vs ...float64) bool {
	for _, v := range vs {
		if math.Abs(v) > MaxMagnitude {
			return false
		}
	}
	return true
}
