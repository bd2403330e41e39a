package streamassert

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/stretchr/testify/assert"
)

// Error succeeds when the log terminated with an error event.
func (exp Expectation[T]) Error() {
	exp.tb.Helper()
	_, ok := exp.terminalError()
	exp.verify(ok, Concise("error"))
}

// ErrorAt succeeds when the log terminated with an error event at the
// given virtual time.
func (exp Expectation[T]) ErrorAt(time Tick) {
	exp.tb.Helper()
	event, ok := exp.terminalError()
	if !ok {
		exp.verify(false, Concise(fmt.Sprintf("error @ <%d>", time)))
		return
	}

	msg := fmt.Sprintf("error @ <%d>", time)
	if event.Time != time {
		msg += fmt.Sprintf(", did error @ <%d> instead", event.Time)
	}

	exp.verify(event.Time == time, Exact(msg))
}

// ErrorAfter succeeds when the log terminated with an error event which
// was preceded by exactly count next events.
func (exp Expectation[T]) ErrorAfter(count int) {
	exp.tb.Helper()
	if _, ok := exp.terminalError(); !ok {
		exp.verify(false, Concise(fmt.Sprintf("error after <%d> events", count)))
		return
	}

	actual := len(exp.log) - 1
	msg := fmt.Sprintf("error after <%d> events", count)
	if actual != count {
		msg += fmt.Sprintf(", did error after <%d> instead", actual)
	}

	exp.verify(actual == count, Exact(msg))
}

// ErrorWithType succeeds when the log terminated with an error whose
// dynamic type is exactly the dynamic type of kind. Wrapped errors and
// interface satisfaction are not considered; see ErrorIs for that.
func (exp Expectation[T]) ErrorWithType(kind error) {
	exp.tb.Helper()
	event, ok := exp.terminalError()
	if !ok {
		exp.verify(false, Concise("error"))
		return
	}

	expected := reflect.TypeOf(kind)
	actual := reflect.TypeOf(event.Err)
	msg := fmt.Sprintf("error with <%s>", typeName(expected))
	if expected != actual {
		msg += fmt.Sprintf(", errored with <%s> instead", typeName(actual))
	}

	exp.verify(expected == actual, Exact(msg))
}

// ErrorWith succeeds when the log terminated with an error of the same
// dynamic type as expected, and which is equal to it.
func (exp Expectation[T]) ErrorWith(expected error) {
	exp.tb.Helper()
	event, ok := exp.terminalError()
	if !ok {
		exp.verify(false, Concise("error"))
		return
	}

	exp.verify(errorsEqual(event.Err, expected),
		Exact(fmt.Sprintf("error with <%v>, got <%v>", expected, event.Err)))
}

// ErrorIs succeeds when the log terminated with an error for which
// [errors.Is] reports a match against target.
func (exp Expectation[T]) ErrorIs(target error) {
	exp.tb.Helper()
	event, ok := exp.terminalError()
	if !ok {
		exp.verify(false, Concise("error"))
		return
	}

	exp.verify(errors.Is(event.Err, target),
		Exact(fmt.Sprintf("error matching <%v>, got <%v>", target, event.Err)))
}

// ErrorContaining succeeds when the log terminated with an error whose
// message contains substr.
func (exp Expectation[T]) ErrorContaining(substr string) {
	exp.tb.Helper()
	event, ok := exp.terminalError()
	if !ok {
		exp.verify(false, Concise("error"))
		return
	}

	exp.verify(event.Err != nil && strings.Contains(event.Err.Error(), substr),
		Exact(fmt.Sprintf("error containing %q, got <%v>", substr, event.Err)))
}

// Complete succeeds when the log terminated with a completion event.
func (exp Expectation[T]) Complete() {
	exp.tb.Helper()
	_, ok := exp.terminalCompletion()
	exp.verify(ok, Concise("complete"))
}

// CompleteAt succeeds when the log terminated with a completion event at
// the given virtual time.
func (exp Expectation[T]) CompleteAt(time Tick) {
	exp.tb.Helper()
	event, ok := exp.terminalCompletion()
	if !ok {
		exp.verify(false, Concise(fmt.Sprintf("complete @ <%d>", time)))
		return
	}

	msg := fmt.Sprintf("complete @ <%d>", time)
	if event.Time != time {
		msg += fmt.Sprintf(", did complete @ <%d> instead", event.Time)
	}

	exp.verify(event.Time == time, Exact(msg))
}

// CompleteAfter succeeds when the log terminated with a completion event
// which was preceded by exactly count next events.
func (exp Expectation[T]) CompleteAfter(count int) {
	exp.tb.Helper()
	if _, ok := exp.terminalCompletion(); !ok {
		exp.verify(false, Concise(fmt.Sprintf("complete after <%d> events", count)))
		return
	}

	actual := len(exp.log) - 1
	msg := fmt.Sprintf("complete after <%d> events", count)
	if actual != count {
		msg += fmt.Sprintf(", did complete after <%d> instead", actual)
	}

	exp.verify(actual == count, Exact(msg))
}

func (exp Expectation[T]) terminalError() (RecordedEvent[T], bool) {
	event, ok := exp.log.Terminal()
	if !ok || !event.IsError() {
		return RecordedEvent[T]{}, false
	}

	return event, true
}

func (exp Expectation[T]) terminalCompletion() (RecordedEvent[T], bool) {
	event, ok := exp.log.Terminal()
	if !ok || !event.IsCompleted() {
		return RecordedEvent[T]{}, false
	}

	return event, true
}

// errorsEqual compares two errors which must share a dynamic type. Values
// of comparable types are compared with ==, everything else falls back to
// deep equality so that no comparison can panic.
func errorsEqual(actual, expected error) bool {
	if actual == nil || expected == nil {
		return actual == expected
	}

	if reflect.TypeOf(actual) != reflect.TypeOf(expected) {
		return false
	}

	if reflect.ValueOf(actual).Comparable() && reflect.ValueOf(expected).Comparable() {
		return actual == expected
	}

	return assert.ObjectsAreEqual(expected, actual)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}
