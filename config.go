package collide

import (
	"log"
	"os"
	"time"
)

// DefaultTickRate is the number of simulation ticks per second.
const DefaultTickRate = 30

const defaultOutbox = 8

// TickerFunc starts a periodic tick source with the given interval and
// returns its channel and a function that stops it.
type TickerFunc func(interval time.Duration) (<-chan time.Time, func())

// Config controls a Worker. The zero value is usable; unset fields fall back
// to the defaults in DefaultConfig.
type Config struct {
	// TickRate is the number of ticks per second once running.
	TickRate int

	// Outbox is the capacity of the worker's outgoing message queue. When it
	// is full the oldest queued message is dropped.
	Outbox int

	// Logger receives lifecycle and rejection lines. Nil uses a stderr logger
	// prefixed with "[collide] ".
	Logger *log.Logger

	// Debug logs per-tick stats and timing.
	Debug bool

	// NewTicker replaces the wall-clock ticker, mainly for tests.
	NewTicker TickerFunc
}

// DefaultConfig returns the configuration used for unset Config fields.
func DefaultConfig() Config {
	return Config{
		TickRate:  DefaultTickRate,
		Outbox:    defaultOutbox,
		Logger:    log.New(os.Stderr, "[collide] ", log.LstdFlags),
		NewTicker: wallTicker,
	}
}

// TickInterval is the time between two ticks.
func (c Config) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.Outbox <= 0 {
		c.Outbox = def.Outbox
	}
	if c.Logger == nil {
		c.Logger = def.Logger
	}
	if c.NewTicker == nil {
		c.NewTicker = def.NewTicker
	}
	return c
}

func wallTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}
