package streamassert

import "fmt"

// Next succeeds when the log contains one (or more) next events.
func (exp Expectation[T]) Next() {
	exp.tb.Helper()
	exp.verify(len(exp.log.NextEvents()) > 0, Concise("next"))
}

// NextAt succeeds when the log contains a next event at the given
// virtual time.
func (exp Expectation[T]) NextAt(time Tick) {
	exp.tb.Helper()
	found := false
	for _, e := range exp.log {
		if e.IsNext() && e.Time == time {
			found = true
			break
		}
	}

	actual := "get an event"
	if len(exp.log) == 0 {
		actual = "get any events"
	}

	exp.verify(found, Full(fmt.Sprintf("next @ <%d>", time), actual))
}

// NextTimes succeeds when the log contains exactly the given number of
// next events.
func (exp Expectation[T]) NextTimes(expected int) {
	exp.tb.Helper()
	actual := len(exp.log.NextEvents())
	exp.verify(actual == expected,
		Exact(fmt.Sprintf("next <%d> times, did get <%d> events", expected, actual)))
}

// Never succeeds when nothing at all was recorded, mirroring a stream
// which never emits.
func (exp Expectation[T]) Never() {
	exp.tb.Helper()
	exp.verify(len(exp.log) == 0,
		Concise(fmt.Sprintf("never emit, got <%d> event(s)", len(exp.log))))
}

// Empty succeeds when the only event recorded is a completion, mirroring
// a stream which completes without emitting.
func (exp Expectation[T]) Empty() {
	exp.tb.Helper()
	exp.verify(len(exp.log) > 0 && exp.log[0].IsCompleted(),
		Concise("complete with no other events"))
}

// NextAtMatch succeeds when the next event at the given index (counting
// only next events) satisfies matcher. The string returned by matcher is
// used verbatim as the failure message.
func (exp Expectation[T]) NextAtMatch(index int, matcher func(T) (bool, string)) {
	exp.tb.Helper()
	value, ok := exp.nextAt(index)
	if !ok {
		return
	}

	pass, msg := matcher(value)
	exp.verify(pass, Exact(msg))
}

// FirstNextMatch is NextAtMatch for the first next event.
func (exp Expectation[T]) FirstNextMatch(matcher func(T) (bool, string)) {
	exp.tb.Helper()
	exp.NextAtMatch(0, matcher)
}

// LastNextMatch is NextAtMatch for the last next event.
func (exp Expectation[T]) LastNextMatch(matcher func(T) (bool, string)) {
	exp.tb.Helper()
	exp.NextAtMatch(len(exp.log.NextEvents())-1, matcher)
}

// NextAtMatcher succeeds when the next event at the given index is accepted
// by the value matcher.
func (exp Expectation[T]) NextAtMatcher(index int, matcher ValueMatcher[T]) {
	exp.tb.Helper()
	exp.NextAtMatch(index, func(value T) (bool, string) {
		return matcher.DoesMatch(value), fmt.Sprintf("%s, got <%+v>", matcher, value)
	})
}

// nextAt returns the value of the next event at index. If there are not
// enough next events a failure is verified and false is returned.
func (exp Expectation[T]) nextAt(index int) (T, bool) {
	exp.tb.Helper()
	nexts := exp.log.NextEvents()
	if index < 0 || index >= len(nexts) {
		exp.verify(false, Concise(fmt.Sprintf("get enough next events, got <%d>", len(nexts))))

		var zero T
		return zero, false
	}

	return nexts[index].Value, true
}
