package collide

import "errors"

var (
	// ErrInvalidBody is returned for a body with a non-finite field or a
	// non-positive radius or mass.
	ErrInvalidBody = errors.New("invalid body")

	// ErrInvalidBounds is returned for non-finite or non-positive bounds.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrMalformed is returned for a message with an unknown kind or a
	// missing payload.
	ErrMalformed = errors.New("malformed message")

	// ErrBoundsNotSet is reported when bodies arrive before any bounds.
	ErrBoundsNotSet = errors.New("bounds not set")

	// ErrAlreadyRunning is reported for a second init message.
	ErrAlreadyRunning = errors.New("simulation already running")

	// ErrStopped is returned by Post once the worker has been stopped.
	ErrStopped = errors.New("worker stopped")
)
