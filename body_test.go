package collide

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestBodyValidate(t *testing.T) {
	tests := []struct {
		name string
		body Body
		ok   bool
	}{
		{"valid", Body{X: 1, Y: 2, VX: -3, VY: 4, Radius: 5, Mass: 6}, true},
		{"zero radius", Body{Radius: 0, Mass: 1}, false},
		{"negative radius", Body{Radius: -1, Mass: 1}, false},
		{"zero mass", Body{Radius: 1, Mass: 0}, false},
		{"NaN x", Body{X: math.NaN(), Radius: 1, Mass: 1}, false},
		{"infinite vy", Body{VY: math.Inf(-1), Radius: 1, Mass: 1}, false},
		{"infinite mass", Body{Radius: 1, Mass: math.Inf(1)}, false},
		{"at max magnitude", Body{X: MaxMagnitude, VX: -MaxMagnitude, Radius: 1, Mass: 1}, true},
		{"huge position", Body{X: 1e308, Radius: 1, Mass: 1}, false},
		{"huge velocity", Body{VY: -1e200, Radius: 1, Mass: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.body.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidBody) {
				t.Errorf("Validate() = %v, want ErrInvalidBody", err)
			}
		})
	}
}

func TestValidateBodiesReportsIndex(t *testing.T) {
	err := ValidateBodies([]Body{{Radius: 1, Mass: 1}, {Radius: 1, Mass: 1}, {Radius: 1, Mass: 0}})
	if err == nil || !strings.HasPrefix(err.Error(), "body 2:") {
		t.Errorf("ValidateBodies = %v, want error for body 2", err)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		name   string
		body   Body
		expect bool
	}{
		{"center", Body{X: 50, Y: 25, Radius: 5}, true},
		{"touching left", Body{X: 5, Y: 25, Radius: 5}, true},
		{"touching bottom-right", Body{X: 95, Y: 45, Radius: 5}, true},
		{"over left", Body{X: 4, Y: 25, Radius: 5}, false},
		{"over bottom", Body{X: 50, Y: 46, Radius: 5}, false},
		{"wider than world", Body{X: 50, Y: 25, Radius: 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.body); got != tt.expect {
				t.Errorf("Contains(%+v) = %v, want %v", tt.body, got, tt.expect)
			}
		})
	}
}

func TestCloneBodies(t *testing.T) {
	if CloneBodies(nil) != nil {
		t.Error("CloneBodies(nil) should stay nil")
	}
	src := []Body{{X: 1}, {X: 2}}
	dst := CloneBodies(src)
	dst[0].X = 10
	if src[0].X != 1 {
		t.Error("clone shares memory with source")
	}
}
