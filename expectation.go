// streamassert offers an expressive way to assert that
// the recorded output of a stream, played back under a
// virtual-time test scheduler, looks as expected.
package streamassert

import "strings"

// Expectation binds a recorded log to the location it was created at and
// a negation flag. Each matcher method evaluates one property of the log and
// reports a failure to the expectation's Reporter if the property does not
// hold (or, when negated, if it does).
//
// Expectations are values: Not, At and Debug return modified copies and never
// alter the receiver.
type Expectation[T any] struct {
	log      Log[T]
	location Location
	negated  bool
	debug    bool
	reporter Reporter

	// tb marks every frame between the caller and the reporter as a test
	// helper, so the testing package attributes failures to the caller.
	tb helper
}

// That returns an expectation over the given log which reports failures
// to t. The location of the call to That is used to attribute failures.
func That[T any](t TestingT, log Log[T]) Expectation[T] {
	return newExpectation(TestingReporter(t), log, callerLocation(0))
}

// ThatReporter is identical to That, but reports failures to the
// reporter provided. The reporter must not be nil; ThatReporter panics
// if it is.
func ThatReporter[T any](reporter Reporter, log Log[T]) Expectation[T] {
	return newExpectation(reporter, log, callerLocation(0))
}

func newExpectation[T any](reporter Reporter, log Log[T], loc Location) Expectation[T] {
	if reporter == nil {
		panic("streamassert: nil Reporter")
	}

	// Helper only marks the frame which calls it directly, so the test
	// itself is held rather than a forwarding wrapper.
	var tb helper = noHelper{}
	if r, ok := reporter.(*testingReporter); ok {
		if h, ok := r.t.(helper); ok {
			tb = h
		}
	} else if h, ok := reporter.(helper); ok {
		tb = h
	}

	return Expectation[T]{log: log, location: loc, reporter: reporter, tb: tb}
}

// Not returns a negated copy of this expectation. Negating twice restores
// the original polarity.
func (exp Expectation[T]) Not() Expectation[T] {
	exp.negated = !exp.negated
	return exp
}

// At returns a copy of this expectation which attributes failures to the
// given file and line instead of the location it was created at.
func (exp Expectation[T]) At(file string, line int) Expectation[T] {
	exp.location = Location{File: file, Line: line}
	return exp
}

// Debug returns a copy of this expectation which appends a trace of the
// entire recorded log to any failure it reports.
func (exp Expectation[T]) Debug() Expectation[T] {
	exp.debug = true
	return exp
}

func (exp Expectation[T]) Negated() bool      { return exp.negated }
func (exp Expectation[T]) Location() Location { return exp.location }
func (exp Expectation[T]) Events() Log[T]     { return exp.log }

// verify reports msg iff pass == negated. A non-negated expectation fails
// when the property does not hold, a negated one when it does.
func (exp Expectation[T]) verify(pass bool, msg FailureMessage) {
	exp.tb.Helper()
	if pass != exp.negated {
		return
	}

	message := msg.Render(exp.negated)
	if exp.debug {
		builder := &strings.Builder{}
		builder.WriteString(message)
		builder.WriteString("\n")
		exp.log.FPrintTrace(builder)
		message = strings.TrimSuffix(builder.String(), "\n")
	}

	exp.reporter.Report(message, exp.location)
}
