package streamassert

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

// Location is the source position an expectation was created at, used to
// attribute failures.
type Location struct {
	File string
	Line int
}

func (loc Location) String() string {
	if loc.File == "" {
		return "<unknown>"
	}

	return fmt.Sprintf("%s:%d", filepath.Base(loc.File), loc.Line)
}

// callerLocation returns the location of whoever called the function which
// is calling callerLocation, skipping a further 'skip' frames.
func callerLocation(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 2)
	if !ok {
		return Location{}
	}

	return Location{File: file, Line: line}
}

// Reporter receives a rendered failure message, along with the location
// of the expectation which failed. A reporter must not abort the caller;
// matchers keep running after a report.
type Reporter interface {
	Report(message string, loc Location)
}

// ReporterFunc adapts a plain function to a Reporter.
type ReporterFunc func(message string, loc Location)

func (f ReporterFunc) Report(message string, loc Location) { f(message, loc) }

// TestingT is a minimal interface which mimics the standard
// [testing.T] struct. This is used in places that streamassert accepts
// a testing.T in order to allow unit testing of it's behaviour.
type TestingT interface {
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
	Error(args ...any)
	Log(args ...any)
}

type helper interface {
	Helper()
}

type noHelper struct{}

func (noHelper) Helper() {}

type testingReporter struct {
	t TestingT
}

// TestingReporter returns a Reporter which marks the given test as failed
// (without stopping it), prefixing the message with the location of the
// failed expectation.
func TestingReporter(t TestingT) Reporter {
	return &testingReporter{t: t}
}

func (r *testingReporter) Report(message string, loc Location) {
	if h, ok := r.t.(helper); ok {
		h.Helper()
	}

	r.t.Errorf("%s: %s", loc, message)
}

// Failure is a single report captured by a Capture reporter.
type Failure struct {
	Message  string
	Location Location
}

// Capture is a Reporter which records every failure it receives instead
// of failing a test. It is intended for testing matchers themselves.
type Capture struct {
	mu       sync.Mutex
	failures []Failure
}

func (c *Capture) Report(message string, loc Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures = append(c.failures, Failure{Message: message, Location: loc})
}

// Failures returns a copy of all captured failures, oldest first.
func (c *Capture) Failures() []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Failure, len(c.failures))
	copy(out, c.failures)
	return out
}

// Messages returns the message of every captured failure, oldest first.
func (c *Capture) Messages() []string {
	failures := c.Failures()
	out := make([]string, 0, len(failures))
	for _, f := range failures {
		out = append(out, f.Message)
	}

	return out
}

// Failed returns true if any failure has been captured.
func (c *Capture) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.failures) > 0
}

// Reset discards all captured failures.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures = nil
}
