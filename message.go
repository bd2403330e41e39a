package streamassert

import "fmt"

type messageShape int

const (
	shapeConcise messageShape = iota
	shapeFull
	shapeExact
)

// FailureMessage describes what a matcher expected, and is rendered into a
// diagnostic only once a failure is known to have occurred. The shape of the
// message decides how negation changes the wording.
type FailureMessage struct {
	shape  messageShape
	text   string
	actual string
}

// Concise is a plain statement of the expectation, e.g. "error".
func Concise(text string) FailureMessage {
	return FailureMessage{shape: shapeConcise, text: text}
}

// Full pairs the expectation with a description of what actually happened,
// which is phrased as "did not <actual>" or "did <actual>" depending on
// negation.
func Full(text string, actual string) FailureMessage {
	return FailureMessage{shape: shapeFull, text: text, actual: actual}
}

// Exact is used verbatim after the "expected to" prefix. Any description of
// the actual outcome must already be part of text.
func Exact(text string) FailureMessage {
	return FailureMessage{shape: shapeExact, text: text}
}

// Render produces the diagnostic for this message. It has no side effects.
func (msg FailureMessage) Render(negated bool) string {
	prefix := "expected to"
	if negated {
		prefix = "expected not to"
	}

	//exhaustive:enforce
	switch msg.shape {
	case shapeConcise, shapeExact:
		return fmt.Sprintf("%s %s", prefix, msg.text)
	case shapeFull:
		did := "did not"
		if negated {
			did = "did"
		}

		return fmt.Sprintf("%s %s, %s %s", prefix, msg.text, did, msg.actual)
	}

	panic("unreachable")
}

func (msg FailureMessage) String() string { return msg.Render(false) }
