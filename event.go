package streamassert

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tick is a point in virtual time, as counted by the test scheduler
// which recorded the stream.
type Tick int64

type EventKind int

const (
	KindNext EventKind = iota
	KindError
	KindCompleted
)

func (k EventKind) String() string {
	//exhaustive:enforce
	switch k {
	case KindNext:
		return "NEXT"
	case KindError:
		return "ERROR"
	case KindCompleted:
		return "COMPLETED"
	}

	panic("unreachable")
}

// RecordedEvent is a single notification captured from a stream, stamped
// with the virtual time it was delivered at. Value is only meaningful for
// KindNext events, and Err only for KindError events.
type RecordedEvent[T any] struct {
	Time  Tick
	Kind  EventKind
	Value T
	Err   error
}

// Next returns a recorded next event carrying value at the given tick.
func Next[T any](time Tick, value T) RecordedEvent[T] {
	return RecordedEvent[T]{Time: time, Kind: KindNext, Value: value}
}

// Error returns a recorded error event at the given tick.
func Error[T any](time Tick, err error) RecordedEvent[T] {
	return RecordedEvent[T]{Time: time, Kind: KindError, Err: err}
}

// Completed returns a recorded completion event at the given tick.
func Completed[T any](time Tick) RecordedEvent[T] {
	return RecordedEvent[T]{Time: time, Kind: KindCompleted}
}

func (e RecordedEvent[T]) IsNext() bool      { return e.Kind == KindNext }
func (e RecordedEvent[T]) IsError() bool     { return e.Kind == KindError }
func (e RecordedEvent[T]) IsCompleted() bool { return e.Kind == KindCompleted }

// IsTerminal returns true for error and completion events.
func (e RecordedEvent[T]) IsTerminal() bool { return e.Kind != KindNext }

func (e RecordedEvent[T]) String() string {
	//exhaustive:enforce
	switch e.Kind {
	case KindNext:
		return fmt.Sprintf("next(%d, %v)", e.Time, e.Value)
	case KindError:
		return fmt.Sprintf("error(%d, %v)", e.Time, e.Err)
	case KindCompleted:
		return fmt.Sprintf("completed(%d)", e.Time)
	}

	panic("unreachable")
}

// Log is the ordered output of a stream under test. Order of insertion is
// chronological order. The log is owned by whatever recorded it; nothing in
// this package modifies a Log it has been handed.
type Log[T any] []RecordedEvent[T]

// NextEvents returns only the next events of the log, in order.
func (log Log[T]) NextEvents() []RecordedEvent[T] {
	nexts := make([]RecordedEvent[T], 0, len(log))
	for _, e := range log {
		if e.IsNext() {
			nexts = append(nexts, e)
		}
	}

	return nexts
}

// Last returns the final event in the log, if any.
func (log Log[T]) Last() (RecordedEvent[T], bool) {
	if len(log) == 0 {
		return RecordedEvent[T]{}, false
	}

	return log[len(log)-1], true
}

// Terminal returns the terminal event of the log. The bool is false if
// the log has not terminated.
func (log Log[T]) Terminal() (RecordedEvent[T], bool) {
	last, ok := log.Last()
	if !ok || !last.IsTerminal() {
		return RecordedEvent[T]{}, false
	}

	return last, true
}

// Validate checks the log against the recording contract: ticks are
// non-negative and never decrease, and at most one terminal event is
// present, always in last position. The first violation found is returned
// as a ContractError.
func (log Log[T]) Validate() error {
	var previous Tick
	for idx, e := range log {
		switch {
		case e.Time < 0:
			return ContractError{Index: idx, Event: e.String(), Err: ErrNegativeTime}
		case idx > 0 && e.Time < previous:
			return ContractError{Index: idx, Event: e.String(), Err: ErrTimeRegressed}
		case e.IsTerminal() && idx != len(log)-1:
			return ContractError{Index: idx, Event: e.String(), Err: ErrTerminalNotLast}
		}

		previous = e.Time
	}

	return nil
}

// PrintTrace prints a formatted representation
// of the log to stdout.
func (log Log[T]) PrintTrace() {
	log.FPrintTrace(os.Stdout)
}

// FPrintTrace prints a formatted representation
// of the log to the writer provided.
func (log Log[T]) FPrintTrace(w io.Writer) {
	log.trace().printTrace(w, 0)
}

func (log Log[T]) trace() traceMessage {
	events := make([]traceMessage, 0, len(log))
	for idx, e := range log {
		events = append(events, newEmptyTrace(fmt.Sprintf("#%d @ <%d> %s", idx, e.Time, e.describe())))
	}

	return newNestedTrace(fmt.Sprintf("Recorded %d event(s)", len(log)), events)
}

func (e RecordedEvent[T]) describe() string {
	//exhaustive:enforce
	switch e.Kind {
	case KindNext:
		return fmt.Sprintf("%s '%+v'", e.Kind, e.Value)
	case KindError:
		return fmt.Sprintf("%s '%v' (%T)", e.Kind, e.Err, e.Err)
	case KindCompleted:
		return e.Kind.String()
	}

	panic("unreachable")
}

type traceMessage struct {
	Message string
	Nested  []traceMessage
}

func newEmptyTrace(message string) traceMessage {
	return traceMessage{Message: message}
}

func newNestedTrace(message string, nested []traceMessage) traceMessage {
	return traceMessage{
		Message: message,
		Nested:  nested,
	}
}

func (msg traceMessage) printTrace(writer io.Writer, nestLevel int) {
	fmt.Fprint(writer, strings.Repeat("  ", nestLevel))
	fmt.Fprintf(writer, "- %s\n", msg.Message)
	for _, trace := range msg.Nested {
		trace.printTrace(writer, nestLevel+1)
	}
}
