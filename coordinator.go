package collide

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// Simulation is the message boundary of a simulation worker, local or remote.
type Simulation interface {
	Post(msg Message) error
	Messages() <-chan Message
}

// Snapshot is one frame as seen by the render side. A Snapshot is never
// modified after it is published; renderers must treat Bodies as read-only.
type Snapshot struct {
	Tick     uint64
	Bodies   []Body
	Received time.Time
}

// Coordinator is the render side of the protocol. It sends the initial state
// to a Simulation, then keeps the most recently received frame available to
// any number of readers drawing at their own rate.
type Coordinator struct {
	sim Simulation
	log *log.Logger

	snapshot atomic.Pointer[Snapshot]
	lastErr  atomic.Pointer[error]
	frames   atomic.Uint64
}

// NewCoordinator creates a coordinator for sim. A nil logger falls back to the
// default stderr logger.
func NewCoordinator(sim Simulation, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = DefaultConfig().Logger
	}
	return &Coordinator{sim: sim, log: logger}
}

// Setup sends the bounds and then the initial bodies. The initial bodies also
// become the first snapshot so there is something to draw before the first
// tick arrives. A returned error names the message that failed, "setup
// bounds" or "setup init".
func (c *Coordinator) Setup(bounds Bounds, bodies []Body) error {
	if err := c.sim.Post(BoundsMessage(bounds)); err != nil {
		return fmt.Errorf("setup %s: %w", KindBounds, err)
	}
	if err := c.sim.Post(InitMessage(bodies)); err != nil {
		// The bounds were accepted; the simulation waits in the bounds-set
		// state for another init.
		return fmt.Errorf("setup %s: %w", KindInit, err)
	}
	c.snapshot.CompareAndSwap(nil, &Snapshot{Bodies: CloneBodies(bodies), Received: time.Now()})
	return nil
}

// Run receives messages until ctx is done or the simulation closes its
// channel. It returns nil when the simulation ended on its own.
func (c *Coordinator) Run(ctx context.Context) error {
	in := c.sim.Messages()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-in:
			if !ok {
				return nil
			}
			c.receive(msg)
		}
	}
}

func (c *Coordinator) receive(msg Message) {
	switch msg.Kind {
	case KindFrame:
		if err := ValidateBodies(msg.Bodies); err != nil {
			c.log.Printf("frame %d discarded: %v", msg.Tick, err)
			return
		}
		c.snapshot.Store(&Snapshot{Tick: msg.Tick, Bodies: msg.Bodies, Received: time.Now()})
		c.frames.Add(1)
	case KindError:
		err := errors.New(msg.Error)
		c.lastErr.Store(&err)
		c.log.Printf("simulation error: %s", msg.Error)
	default:
		c.log.Printf("unexpected %q message ignored", msg.Kind)
	}
}

// Snapshot returns the most recent frame, or nil before Setup.
func (c *Coordinator) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

// Err returns the last error reported by the simulation, if any.
func (c *Coordinator) Err() error {
	if p := c.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Frames returns the number of frames received.
func (c *Coordinator) Frames() uint64 {
	return c.frames.Load()
}
