package streamassert

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeTime indicates an event was stamped before virtual time zero.
	ErrNegativeTime = errors.New("event recorded at negative virtual time")

	// ErrTimeRegressed indicates an event was stamped earlier than the
	// event recorded before it.
	ErrTimeRegressed = errors.New("event recorded earlier than its predecessor")

	// ErrTerminalNotLast indicates an error or completion event was followed
	// by further events in the log.
	ErrTerminalNotLast = errors.New("terminal event is not the last event")

	// ErrAfterTerminal is returned by a Recorder when an event is delivered
	// after the stream has already terminated.
	ErrAfterTerminal = errors.New("event delivered after stream terminated")
)

// ContractError describes the first event of a log which violates the
// recording contract. Err is always one of the sentinel errors above.
type ContractError struct {
	Index int
	Event string
	Err   error
}

func (e ContractError) Error() string {
	return fmt.Sprintf("event #%d (%s) breaks recording contract: %s", e.Index, e.Event, e.Err)
}

func (e ContractError) Unwrap() error { return e.Err }

// FixtureError is the error value stored in error events decoded from a
// log fixture. It is comparable, so fixtures can be asserted against with
// [Expectation.ErrorWith].
type FixtureError struct {
	Message string
}

func (e FixtureError) Error() string { return e.Message }
