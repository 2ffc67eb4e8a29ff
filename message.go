package collide

import "fmt"

// Kind identifies a message in the worker protocol.
type Kind string

const (
	KindBounds Kind = "bounds" // coordinator → worker: set world bounds
	KindInit   Kind = "init"   // coordinator → worker: set bodies and start ticking
	KindStop   Kind = "stop"   // coordinator → worker: halt ticking for good
	KindFrame  Kind = "frame"  // worker → coordinator: bodies after a tick
	KindError  Kind = "error"  // worker → coordinator: a message was rejected
)

// Message is the single envelope exchanged between a render coordinator and a
// simulation worker. Which payload fields are meaningful depends on Kind.
// Messages are copied across the channel; a receiver never shares the
// sender's body slice.
type Message struct {
	Kind   Kind    `json:"kind"`
	Bounds *Bounds `json:"bounds,omitempty"`
	Bodies []Body  `json:"bodies,omitempty"`
	Tick   uint64  `json:"tick,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// BoundsMessage returns a message that sets the world bounds.
func BoundsMessage(b Bounds) Message {
	return Message{Kind: KindBounds, Bounds: &b}
}

// InitMessage returns a message that hands the initial bodies to the worker.
// The bodies are copied.
func InitMessage(bodies []Body) Message {
	return Message{Kind: KindInit, Bodies: CloneBodies(bodies)}
}

// StopMessage returns a message that stops the worker.
func StopMessage() Message {
	return Message{Kind: KindStop}
}

func frameMessage(tick uint64, bodies []Body) Message {
	return Message{Kind: KindFrame, Tick: tick, Bodies: CloneBodies(bodies)}
}

func errorMessage(err error) Message {
	return Message{Kind: KindError, Error: err.Error()}
}

// Validate checks that the message has a known kind and a well-formed payload
// for that kind. It does not check whether the message is acceptable in the
// receiver's current state.
func (m Message) Validate() error {
	switch m.Kind {
	case KindBounds:
		if m.Bounds == nil {
			return fmt.Errorf("%w: %s without bounds", ErrMalformed, m.Kind)
		}
		return m.Bounds.Validate()
	case KindInit, KindFrame:
		return ValidateBodies(m.Bodies)
	case KindStop, KindError:
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformed, m.Kind)
	}
}

// clone returns a deep copy of m.
func (m Message) clone() Message {
	if m.Bounds != nil {
		b := *m.Bounds
		m.Bounds = &b
	}
	m.Bodies = CloneBodies(m.Bodies)
	return m
}
