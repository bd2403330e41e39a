package streamassert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/stretchr/testify/assert"
)

// ValueMatcher decides whether a single recorded value is acceptable. It
// is used with [Expectation.NextAtMatcher] for comparisons beyond plain
// equality. String describes what the matcher accepts, and is used in
// failure messages.
type ValueMatcher[T any] interface {
	DoesMatch(t T) bool
	String() string
}

type equalMatcher[T comparable] struct {
	target T
}

func (eqMatch *equalMatcher[T]) DoesMatch(t T) bool {
	return t == eqMatch.target
}

func (eqMatch *equalMatcher[T]) String() string {
	return fmt.Sprintf("equal <%v>", eqMatch.target)
}

// MatchEqual returns a matcher which will check if the
// value provided is equal to the recorded value.
func MatchEqual[T comparable](val T) ValueMatcher[T] {
	return &equalMatcher[T]{target: val}
}

type stringContainsMatcher struct{ target string }

func (contains *stringContainsMatcher) DoesMatch(value string) bool {
	return strings.Contains(value, contains.target)
}

func (contains *stringContainsMatcher) String() string {
	return fmt.Sprintf("contain %q", contains.target)
}

// MatchStringContains returns a matcher which tests if recorded string
// values contain the provided substring.
func MatchStringContains(target string) ValueMatcher[string] {
	return &stringContainsMatcher{target: target}
}

type deepEqualMatcher[T any] struct{ target T }

func (eqMatch *deepEqualMatcher[T]) DoesMatch(t T) bool {
	return assert.ObjectsAreEqual(eqMatch.target, t)
}

func (eqMatch *deepEqualMatcher[T]) String() string {
	return fmt.Sprintf("deeply equal <%+v>", eqMatch.target)
}

// MatchDeepEqual returns a matcher which performs a deep-equality
// check, suitable for values which are not comparable (slices, maps,
// structs containing either).
func MatchDeepEqual[T any](target T) ValueMatcher[T] {
	return &deepEqualMatcher[T]{target: target}
}

// MatchStructPartial returns a matcher which tests that
// all non-zero values inside of the provided struct
// match the same fields inside of the recorded values. That is
// to say, a target with a zero-value for a field will NOT check
// if that value is also a zero-value in the recorded value.
func MatchStructPartial[T any](target T) ValueMatcher[T] {
	fieldValues := make(map[string]any)
	rt := reflect.TypeOf(target)
	rv := reflect.ValueOf(target)

	if rt == nil || rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("MatchStructPartial expects a struct as it's argument, not %T", target))
	}

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fieldValue := rv.Field(i)

		// Skip unexported fields
		if field.PkgPath != "" {
			continue
		}

		if fieldValue.Kind() != reflect.Interface && !fieldValue.IsZero() {
			fieldValues[field.Name] = fieldValue.Interface()
		}
	}

	return &structFieldMatcher[T]{fieldsAndValues: fieldValues}
}

type structFieldMatcher[T any] struct {
	fieldsAndValues map[string]any
}

func (fieldEqMatch *structFieldMatcher[T]) DoesMatch(t T) bool {
	rt := reflect.TypeOf(t)
	rv := reflect.ValueOf(t)

	if rt == nil || rt.Kind() != reflect.Struct {
		return false
	}

	for field, expectedValue := range fieldEqMatch.fieldsAndValues {
		fieldValue := rv.FieldByName(field)
		if !fieldValue.IsValid() || !fieldValue.CanInterface() {
			return false
		}

		// Handle nil interface expectation
		if expectedValue == nil {
			if fieldValue.Kind() == reflect.Interface && fieldValue.IsNil() {
				continue
			}

			return false
		}

		if !fieldValue.Type().AssignableTo(reflect.TypeOf(expectedValue)) {
			return false
		}

		if !assert.ObjectsAreEqual(expectedValue, fieldValue.Interface()) {
			return false
		}
	}

	return true
}

func (fieldEqMatch *structFieldMatcher[T]) String() string {
	return fmt.Sprintf("have fields <%v>", fieldEqMatch.fieldsAndValues)
}

// MatchStructFields returns a matcher which will match values which
// contain the field values specified. This is achieved via reflection, and
// extra fields in the value are ignored (however a missing field will cause
// a negative match).
func MatchStructFields[T any](fieldsAndValues map[string]any) ValueMatcher[T] {
	return &structFieldMatcher[T]{fieldsAndValues: fieldsAndValues}
}

type predicateMatcher[T any] struct {
	description string
	predicate   func(T) bool
}

func (pred *predicateMatcher[T]) DoesMatch(t T) bool { return pred.predicate(t) }
func (pred *predicateMatcher[T]) String() string     { return pred.description }

// MatchFunc wraps an arbitrary predicate as a matcher. The description is
// used in failure messages, e.g. "be positive".
func MatchFunc[T any](description string, predicate func(T) bool) ValueMatcher[T] {
	return &predicateMatcher[T]{description: description, predicate: predicate}
}

type combinedMatcher[T any] struct {
	matchers []ValueMatcher[T]
	all      bool
}

func (combined *combinedMatcher[T]) DoesMatch(t T) bool {
	for _, m := range combined.matchers {
		if m.DoesMatch(t) != combined.all {
			return !combined.all
		}
	}

	return combined.all
}

func (combined *combinedMatcher[T]) String() string {
	joiner := " or "
	if combined.all {
		joiner = " and "
	}

	descriptions := make([]string, 0, len(combined.matchers))
	for _, m := range combined.matchers {
		descriptions = append(descriptions, m.String())
	}

	return strings.Join(descriptions, joiner)
}

// MatchAllOf returns a matcher which accepts a value only if every one
// of the provided matchers accepts it. With no matchers, every value
// is accepted.
func MatchAllOf[T any](matchers ...ValueMatcher[T]) ValueMatcher[T] {
	return &combinedMatcher[T]{matchers: matchers, all: true}
}

// MatchOneOf returns a matcher which accepts a value if any of the
// provided matchers accepts it. With no matchers, no value is accepted.
func MatchOneOf[T any](matchers ...ValueMatcher[T]) ValueMatcher[T] {
	return &combinedMatcher[T]{matchers: matchers, all: false}
}
