package collide

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMessageValidate(t *testing.T) {
	good := []Body{{X: 1, Y: 1, Radius: 1, Mass: 1}}
	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"bounds", BoundsMessage(Bounds{Width: 10, Height: 10}), nil},
		{"bounds missing", Message{Kind: KindBounds}, ErrMalformed},
		{"bounds zero width", BoundsMessage(Bounds{Width: 0, Height: 10}), ErrInvalidBounds},
		{"bounds infinite", BoundsMessage(Bounds{Width: math.Inf(1), Height: 10}), ErrInvalidBounds},
		{"init", InitMessage(good), nil},
		{"init empty", InitMessage(nil), nil},
		{"init zero radius", InitMessage([]Body{{Radius: 0, Mass: 1}}), ErrInvalidBody},
		{"init negative mass", InitMessage([]Body{{Radius: 1, Mass: -1}}), ErrInvalidBody},
		{"init NaN velocity", InitMessage([]Body{{VX: math.NaN(), Radius: 1, Mass: 1}}), ErrInvalidBody},
		{"stop", StopMessage(), nil},
		{"unknown", Message{Kind: "resize"}, ErrMalformed},
		{"empty kind", Message{}, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInitMessageCopiesBodies(t *testing.T) {
	bodies := []Body{{X: 1, Radius: 1, Mass: 1}}
	msg := InitMessage(bodies)
	bodies[0].X = 99
	if msg.Bodies[0].X != 1 {
		t.Errorf("message shares the caller's slice: X = %v", msg.Bodies[0].X)
	}
}

func TestMessageCloneIsDeep(t *testing.T) {
	msg := Message{Kind: KindBounds, Bounds: &Bounds{Width: 5, Height: 6}, Bodies: []Body{{X: 1}}}
	c := msg.clone()
	msg.Bounds.Width = 50
	msg.Bodies[0].X = 10
	if c.Bounds.Width != 5 || c.Bodies[0].X != 1 {
		t.Errorf("clone shares memory: %+v %+v", *c.Bounds, c.Bodies)
	}
}

func TestMessageJSONShape(t *testing.T) {
	data, err := json.Marshal(frameMessage(3, []Body{{X: 1, Y: 2, VX: 3, VY: 4, Radius: 5, Mass: 6}}))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"frame","bodies":[{"x":1,"y":2,"vx":3,"vy":4,"radius":5,"mass":6}],"tick":3}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var in Message
	if err := json.Unmarshal([]byte(`{"kind":"bounds","bounds":{"width":640,"height":480}}`), &in); err != nil {
		t.Fatal(err)
	}
	if in.Kind != KindBounds || in.Bounds == nil || *in.Bounds != (Bounds{640, 480}) {
		t.Errorf("decoded %+v", in)
	}
}
