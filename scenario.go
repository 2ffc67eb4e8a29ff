package collide

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
)

// RandomSpec describes bodies to scatter across the bounds.
type RandomSpec struct {
	Count     int     `json:"count"`
	MinRadius float64 `json:"minRadius"`
	MaxRadius float64 `json:"maxRadius"`
	MaxSpeed  float64 `json:"maxSpeed"`
	Seed      uint64  `json:"seed"`
}

// Scenario is a starting state loaded from JSON. Explicit bodies keep their
// order and come before any generated ones.
type Scenario struct {
	Name     string      `json:"name,omitempty"`
	TickRate int         `json:"tickRate,omitempty"`
	Bounds   Bounds      `json:"bounds"`
	Bodies   []Body      `json:"bodies,omitempty"`
	Random   *RandomSpec `json:"random,omitempty"`
}

// LoadScenario parses a JSON scenario and checks that it describes at least
// one body inside valid bounds.
func LoadScenario(jsonData []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := ValidateBodies(s.Bodies); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Random != nil {
		if err := s.Random.validate(); err != nil {
			return nil, fmt.Errorf("parse scenario: %w", err)
		}
	}
	if len(s.Bodies) == 0 && (s.Random == nil || s.Random.Count == 0) {
		return nil, fmt.Errorf("parse scenario: no bodies")
	}
	if s.TickRate < 0 {
		return nil, fmt.Errorf("parse scenario: negative tick rate %d", s.TickRate)
	}
	return &s, nil
}

// LoadScenarioFile reads and parses a scenario file.
func LoadScenarioFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := LoadScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// RandomScenario scatters n billiard balls across bounds. The same seed always
// produces the same bodies.
func RandomScenario(n int, seed uint64, bounds Bounds) *Scenario {
	return &Scenario{
		Name:   "random",
		Bounds: bounds,
		Random: &RandomSpec{Count: n, MinRadius: 8, MaxRadius: 24, MaxSpeed: 4, Seed: seed},
	}
}

// Build returns the complete body set: explicit bodies followed by generated
// ones. The result is freshly allocated on every call.
func (s *Scenario) Build() []Body {
	bodies := CloneBodies(s.Bodies)
	if s.Random != nil && s.Random.Count > 0 {
		rng := rand.New(rand.NewPCG(s.Random.Seed, s.Random.Seed^0x9e3779b97f4a7c15))
		bodies = append(bodies, RandomBodies(rng, s.Random.Count, s.Bounds,
			s.Random.MinRadius, s.Random.MaxRadius, s.Random.MaxSpeed)...)
	}
	return bodies
}

func (r *RandomSpec) validate() error {
	switch {
	case r.Count < 0:
		return fmt.Errorf("random: negative count %d", r.Count)
	case !finite(r.MinRadius, r.MaxRadius, r.MaxSpeed) || !inRange(r.MinRadius, r.MaxRadius, r.MaxSpeed):
		return fmt.Errorf("random: range outside [0, %g]", MaxMagnitude)
	case r.MinRadius <= 0 || r.MaxRadius < r.MinRadius:
		return fmt.Errorf("random: bad radius range [%v, %v]", r.MinRadius, r.MaxRadius)
	case r.MaxSpeed < 0:
		return fmt.Errorf("random: negative max speed %v", r.MaxSpeed)
	}
	return nil
}

// RandomBodies scatters n bodies fully inside bounds with radii in
// [minRadius, maxRadius], mass equal to radius, and each velocity component in
// [-maxSpeed, maxSpeed]. Bodies may start overlapping; the first ticks push
// them apart.
func RandomBodies(rng *rand.Rand, n int, bounds Bounds, minRadius, maxRadius, maxSpeed float64) []Body {
	bodies := make([]Body, n)
	for i := range bodies {
		radius := minRadius + rng.Float64()*(maxRadius-minRadius)
		// Keep the body placeable even when it is wider than the world.
		spanX := math.Max(bounds.Width-2*radius, 0)
		spanY := math.Max(bounds.Height-2*radius, 0)
		bodies[i] = Body{
			X:      radius + rng.Float64()*spanX,
			Y:      radius + rng.Float64()*spanY,
			VX:     (rng.Float64()*2 - 1) * maxSpeed,
			VY:     (rng.Float64()*2 - 1) * maxSpeed,
			Radius: radius,
			Mass:   radius,
		}
	}
	return bodies
}
