package collide

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of a Worker.
type State int32

const (
	StateUninitialized State = iota // nothing received yet
	StateBoundsSet                  // bounds received, waiting for bodies
	StateRunning                    // bodies received, ticking
	StateStopped                    // halted; posts nothing further
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBoundsSet:
		return "bounds-set"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

const defaultInbox = 16

// Worker owns the authoritative World and advances it on its own goroutine at
// a fixed tick rate. It is driven entirely by messages: bounds, then init,
// optionally stop. After every tick it posts a frame carrying a copy of all
// bodies to the channel returned by Messages.
type Worker struct {
	cfg Config
	log *log.Logger

	inbox  chan Message
	outbox chan Message

	// world is only touched by the loop goroutine.
	world     World
	boundsSet bool

	state   atomic.Int32
	ticks   atomic.Uint64
	dropped atomic.Uint64

	mu        sync.Mutex
	started   bool
	stopChan  chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWorker creates a worker in the uninitialized state. Call Start to begin
// processing messages.
func NewWorker(cfg Config) *Worker {
	cfg = cfg.withDefaults()
	return &Worker{
		cfg:      cfg,
		log:      cfg.Logger,
		inbox:    make(chan Message, defaultInbox),
		outbox:   make(chan Message, cfg.Outbox),
		stopChan: make(chan struct{}),
	}
}

// Start launches the worker goroutine. Up to 16 messages posted before Start
// are kept and processed in order; further posts block until Start or Stop.
// Start after Stop does nothing.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.State() == StateStopped {
		return
	}
	w.started = true
	w.wg.Add(1)
	go w.loop()
}

// Stop halts the tick and waits for the worker goroutine to exit. Once Stop
// returns, the Messages channel is closed and nothing more is posted. Stop is
// safe to call more than once.
func (w *Worker) Stop() {
	w.mu.Lock()
	started := w.started
	w.signalStop()
	w.mu.Unlock()

	if started {
		w.wg.Wait()
		return
	}
	w.closeOutbox()
}

// Post validates msg, copies it and queues it for the worker. Malformed
// messages are rejected here. Messages that are well formed but not
// acceptable in the worker's state are rejected later with an error message
// on the Messages channel.
//
// Post blocks while the inbox is full, which only happens before Start or
// when the worker falls behind; the inbox holds 16 messages.
func (w *Worker) Post(msg Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("post %s: %w", msg.Kind, err)
	}
	select {
	case <-w.stopChan:
		return ErrStopped
	default:
	}
	select {
	case w.inbox <- msg.clone():
		return nil
	case <-w.stopChan:
		return ErrStopped
	}
}

// Messages returns the channel of frames and error reports, in the order the
// worker posted them. It is closed when the worker stops.
func (w *Worker) Messages() <-chan Message {
	return w.outbox
}

// State returns the current lifecycle state.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Ticks returns the number of ticks completed.
func (w *Worker) Ticks() uint64 {
	return w.ticks.Load()
}

// Dropped returns how many queued messages were discarded because the reader
// fell behind.
func (w *Worker) Dropped() uint64 {
	return w.dropped.Load()
}

func (w *Worker) signalStop() {
	w.stopOnce.Do(func() {
		w.state.Store(int32(StateStopped))
		close(w.stopChan)
	})
}

func (w *Worker) closeOutbox() {
	w.closeOnce.Do(func() { close(w.outbox) })
}

func (w *Worker) loop() {
	defer w.wg.Done()
	defer w.closeOutbox()

	var tickC <-chan time.Time
	stopTicker := func() {}
	defer func() { stopTicker() }()

	for {
		select {
		case <-w.stopChan:
			w.log.Printf("stopped after %d ticks", w.ticks.Load())
			return

		case msg := <-w.inbox:
			if !w.process(msg, &tickC, &stopTicker) {
				return
			}

		case <-tickC:
			// Messages posted before this tick fired apply to it. A tick
			// that has fired is completed even if Stop is called meanwhile;
			// only a stop message cancels it.
			for pending := true; pending; {
				select {
				case msg := <-w.inbox:
					if !w.process(msg, &tickC, &stopTicker) {
						return
					}
				default:
					pending = false
				}
			}
			w.tick()
		}
	}
}

// process handles one inbound message on the loop goroutine, starting the
// ticker on the transition to running. It returns false when the loop must
// exit.
func (w *Worker) process(msg Message, tickC *<-chan time.Time, stopTicker *func()) bool {
	if msg.Kind == KindStop {
		w.signalStop()
		w.log.Printf("stop requested after %d ticks", w.ticks.Load())
		return false
	}
	// Once Stop has been called, remaining messages are ignored.
	if w.State() == StateStopped {
		return true
	}
	if w.handle(msg) && *tickC == nil {
		*tickC, *stopTicker = w.cfg.NewTicker(w.cfg.TickInterval())
	}
	return true
}

// handle applies one inbound message and reports whether the worker just
// entered the running state.
func (w *Worker) handle(msg Message) bool {
	switch msg.Kind {
	case KindBounds:
		w.world.Bounds = *msg.Bounds
		w.boundsSet = true
		if w.State() == StateUninitialized {
			w.state.Store(int32(StateBoundsSet))
		}
		w.log.Printf("bounds set to %vx%v", msg.Bounds.Width, msg.Bounds.Height)
		return false

	case KindInit:
		switch {
		case w.State() == StateRunning:
			w.reject(msg.Kind, ErrAlreadyRunning)
			return false
		case !w.boundsSet:
			w.reject(msg.Kind, ErrBoundsNotSet)
			return false
		}
		w.world.Bodies = msg.Bodies
		w.state.Store(int32(StateRunning))
		w.log.Printf("running %d bodies at %d ticks/s", len(msg.Bodies), w.cfg.TickRate)
		return true

	default:
		w.reject(msg.Kind, fmt.Errorf("%w: %s is not accepted by a worker", ErrMalformed, msg.Kind))
		return false
	}
}

func (w *Worker) reject(kind Kind, err error) {
	err = fmt.Errorf("%s rejected in state %s: %w", kind, w.State(), err)
	w.log.Print(err)
	w.post(errorMessage(err))
}

func (w *Worker) tick() {
	var start time.Time
	if w.cfg.Debug {
		start = time.Now()
	}

	var stats TickStats
	w.world, stats = Step(w.world)
	n := w.ticks.Add(1)
	w.post(frameMessage(n, w.world.Bodies))

	if w.cfg.Debug {
		w.debugLog(n, stats, time.Since(start))
		w.debugCheckEscaped(w.world)
	}
}

// post queues msg without blocking, discarding the oldest queued message when
// the outbox is full. The loop goroutine is the only sender.
func (w *Worker) post(msg Message) {
	for {
		select {
		case w.outbox <- msg:
			return
		default:
		}
		select {
		case <-w.outbox:
			w.dropped.Add(1)
		default:
		}
	}
}
