package streamassert_test

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbomb79/go-streamassert"
)

type testError struct{ code int }

func (e testError) Error() string { return fmt.Sprintf("test error %d", e.code) }

// sliceError has a dynamic type which cannot be compared with ==.
type sliceError struct{ details []string }

func (e sliceError) Error() string { return strings.Join(e.details, ", ") }

type matcherTest struct {
	Summary string
	Log     streamassert.Log[string]
	Assert  func(exp streamassert.ComparableExpectation[string])

	// Failure is the message expected when the matcher is evaluated as-is. An
	// empty Failure means the matcher must pass.
	Failure string

	// NegatedFailure, if set, is the message expected when the matcher is
	// evaluated through Not(). Only meaningful when Failure is empty.
	NegatedFailure string
}

// runMatcherTests evaluates each test twice, once as written and once
// negated, and checks that exactly one of the two reports a failure.
func runMatcherTests(t *testing.T, tests []matcherTest) {
	for _, test := range tests {
		test := test
		t.Run(test.Summary, func(t *testing.T) {
			t.Parallel()

			capture := &streamassert.Capture{}
			test.Assert(streamassert.ThatComparableReporter(capture, test.Log))

			negatedCapture := &streamassert.Capture{}
			test.Assert(streamassert.ThatComparableReporter(negatedCapture, test.Log).Not())

			if test.Failure == "" {
				assert.Empty(t, capture.Messages(), "matcher was expected to pass")
				require.Len(t, negatedCapture.Messages(), 1, "negated matcher was expected to fail")

				negated := negatedCapture.Messages()[0]
				assert.True(t, strings.HasPrefix(negated, "expected not to "), "negated message %q", negated)
				if test.NegatedFailure != "" {
					assert.Equal(t, test.NegatedFailure, negated)
				}

				return
			}

			require.Len(t, capture.Messages(), 1, "matcher was expected to fail")
			assert.Equal(t, test.Failure, capture.Messages()[0])
			assert.Empty(t, negatedCapture.Messages(), "negated matcher was expected to pass")
		})
	}
}

type fakeT struct {
	errors  []string
	logs    []string
	helpers []string
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) Logf(format string, args ...any) {
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
}

func (f *fakeT) Error(args ...any) {
	f.errors = append(f.errors, fmt.Sprint(args...))
}

func (f *fakeT) Log(args ...any) {
	f.logs = append(f.logs, fmt.Sprint(args...))
}

// Helper records the name of the function which marked itself as a helper.
func (f *fakeT) Helper() {
	pcs := make([]uintptr, 1)
	runtime.Callers(2, pcs)
	frame, _ := runtime.CallersFrames(pcs).Next()

	name := frame.Function
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	f.helpers = append(f.helpers, name)
}
