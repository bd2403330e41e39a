package streamassert

import "fmt"

// ComparableExpectation is an Expectation over a log whose values can be
// compared for equality, which unlocks the value-equality matchers.
type ComparableExpectation[T comparable] struct {
	Expectation[T]
}

// ThatComparable returns a comparable expectation over the given log which
// reports failures to t.
func ThatComparable[T comparable](t TestingT, log Log[T]) ComparableExpectation[T] {
	return ComparableExpectation[T]{newExpectation(TestingReporter(t), log, callerLocation(0))}
}

// ThatComparableReporter is identical to ThatComparable, but reports
// failures to the reporter provided, which must not be nil.
func ThatComparableReporter[T comparable](reporter Reporter, log Log[T]) ComparableExpectation[T] {
	return ComparableExpectation[T]{newExpectation(reporter, log, callerLocation(0))}
}

func (exp ComparableExpectation[T]) Not() ComparableExpectation[T] {
	return ComparableExpectation[T]{exp.Expectation.Not()}
}

func (exp ComparableExpectation[T]) At(file string, line int) ComparableExpectation[T] {
	return ComparableExpectation[T]{exp.Expectation.At(file, line)}
}

func (exp ComparableExpectation[T]) Debug() ComparableExpectation[T] {
	return ComparableExpectation[T]{exp.Expectation.Debug()}
}

// NextAtEqual succeeds when the next event at the given index (counting
// only next events) carries a value equal to expected.
func (exp ComparableExpectation[T]) NextAtEqual(index int, expected T) {
	exp.tb.Helper()
	actual, ok := exp.nextAt(index)
	if !ok {
		return
	}

	exp.verify(actual == expected, Exact(fmt.Sprintf("equal <%v>, got <%v>", expected, actual)))
}

// FirstNextEqual is NextAtEqual for the first next event.
func (exp ComparableExpectation[T]) FirstNextEqual(expected T) {
	exp.tb.Helper()
	exp.NextAtEqual(0, expected)
}

// LastNextEqual is NextAtEqual for the last next event.
func (exp ComparableExpectation[T]) LastNextEqual(expected T) {
	exp.tb.Helper()
	exp.NextAtEqual(len(exp.log.NextEvents())-1, expected)
}

// Just succeeds when the log is exactly one next event carrying value,
// followed by a completion at the same virtual time. The first condition
// which does not hold is reported; later ones are not evaluated.
func (exp ComparableExpectation[T]) Just(value T) {
	exp.tb.Helper()
	msg := fmt.Sprintf("get <%v> then complete", value)
	if len(exp.log) != 2 {
		exp.verify(false, Exact(fmt.Sprintf("%s, emitted <%d> event(s)", msg, len(exp.log))))
		return
	}

	next, complete := exp.log[0], exp.log[1]
	if !complete.IsCompleted() {
		exp.verify(false, Exact(msg+", did not complete"))
		return
	}

	if next.Time != complete.Time {
		exp.verify(false, Exact(msg+", did not complete immediately"))
		return
	}

	exp.verify(next.IsNext() && next.Value == value,
		Exact(fmt.Sprintf("%s, got <%v>", msg, next.Value)))
}
