package streamassert_test

import (
	"testing"

	"github.com/hbomb79/go-streamassert"
)

type valueMatcherTest[T any] struct {
	summary      string
	value        T
	shouldAccept bool
}

func runValueMatcherTests[T any](t *testing.T, matcher streamassert.ValueMatcher[T], tests []valueMatcherTest[T]) {
	for _, test := range tests {
		test := test
		t.Run(test.summary, func(t *testing.T) {
			t.Parallel()

			res := matcher.DoesMatch(test.value)
			if test.shouldAccept && !res {
				t.Errorf("Matcher %q REJECTED value '%v', but it was expected to accept", matcher, test.value)
			} else if !test.shouldAccept && res {
				t.Errorf("Matcher %q ACCEPTED value '%v', but it was expected to reject it", matcher, test.value)
			}
		})
	}
}

func Test_MatchEqual(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		runValueMatcherTests(t, streamassert.MatchEqual("hello, world"), []valueMatcherTest[string]{
			{summary: "Positive match", value: "hello, world", shouldAccept: true},
			{summary: "Negative match", value: "hello, world!", shouldAccept: false},
			{summary: "Empty value", value: "", shouldAccept: false},
		})
	})

	t.Run("Int", func(t *testing.T) {
		runValueMatcherTests(t, streamassert.MatchEqual(64), []valueMatcherTest[int]{
			{summary: "Positive match", value: 64, shouldAccept: true},
			{summary: "Negative match", value: 6, shouldAccept: false},
		})
	})

	t.Run("Simple struct", func(t *testing.T) {
		type s struct {
			name string
			age  int
		}

		runValueMatcherTests(t, streamassert.MatchEqual(s{"harry", 24}), []valueMatcherTest[s]{
			{summary: "Positive match", value: s{"harry", 24}, shouldAccept: true},
			{summary: "Negative match", value: s{"bob", 25}, shouldAccept: false},
		})
	})
}

func Test_MatchStringContains(t *testing.T) {
	runValueMatcherTests(t, streamassert.MatchStringContains("hell"), []valueMatcherTest[string]{
		{summary: "Exact match", value: "hell", shouldAccept: true},
		{summary: "Substring match", value: "xxhellxx", shouldAccept: true},
		{summary: "No sub string match", value: "helo", shouldAccept: false},
	})
}

func Test_MatchDeepEqual(t *testing.T) {
	type b struct {
		Y string
		Z []int
	}

	runValueMatcherTests(t, streamassert.MatchDeepEqual(b{Y: "world", Z: []int{1, 2, 3}}), []valueMatcherTest[b]{
		{summary: "Exact match", value: b{Y: "world", Z: []int{1, 2, 3}}, shouldAccept: true},
		{summary: "Slice differs", value: b{Y: "world", Z: []int{1, 2}}, shouldAccept: false},
		{summary: "Nil slice", value: b{Y: "world"}, shouldAccept: false},
	})
}

type person struct {
	Name    string
	Age     int
	Tags    []string
	Details any
}

func Test_MatchStructPartial(t *testing.T) {
	matcher := streamassert.MatchStructPartial(person{Name: "harry", Tags: []string{"a"}})
	runValueMatcherTests(t, matcher, []valueMatcherTest[person]{
		{summary: "All set fields match", value: person{Name: "harry", Age: 24, Tags: []string{"a"}}, shouldAccept: true},
		{summary: "Zero-value fields are not checked", value: person{Name: "harry", Age: 99, Tags: []string{"a"}, Details: 1}, shouldAccept: true},
		{summary: "Name differs", value: person{Name: "bob", Tags: []string{"a"}}, shouldAccept: false},
		{summary: "Tags differ", value: person{Name: "harry", Tags: []string{"b"}}, shouldAccept: false},
	})
}

func Test_MatchStructFields(t *testing.T) {
	matcher := streamassert.MatchStructFields[person](map[string]any{"Name": "harry", "Age": 24})
	runValueMatcherTests(t, matcher, []valueMatcherTest[person]{
		{summary: "Fields match", value: person{Name: "harry", Age: 24, Tags: []string{"x"}}, shouldAccept: true},
		{summary: "Field differs", value: person{Name: "harry", Age: 25}, shouldAccept: false},
	})

	missing := streamassert.MatchStructFields[person](map[string]any{"Missing": 1})
	runValueMatcherTests(t, missing, []valueMatcherTest[person]{
		{summary: "Missing field", value: person{Name: "harry"}, shouldAccept: false},
	})

	nilDetails := streamassert.MatchStructFields[person](map[string]any{"Details": nil})
	runValueMatcherTests(t, nilDetails, []valueMatcherTest[person]{
		{summary: "Nil interface field", value: person{Name: "harry"}, shouldAccept: true},
		{summary: "Populated interface field", value: person{Details: "x"}, shouldAccept: false},
	})
}

func Test_MatchCombinators(t *testing.T) {
	positive := streamassert.MatchFunc("be positive", func(v int) bool { return v > 0 })
	even := streamassert.MatchFunc("be even", func(v int) bool { return v%2 == 0 })

	t.Run("All of", func(t *testing.T) {
		runValueMatcherTests(t, streamassert.MatchAllOf(positive, even), []valueMatcherTest[int]{
			{summary: "Both", value: 4, shouldAccept: true},
			{summary: "Positive only", value: 3, shouldAccept: false},
			{summary: "Even only", value: -2, shouldAccept: false},
		})
	})

	t.Run("One of", func(t *testing.T) {
		runValueMatcherTests(t, streamassert.MatchOneOf(positive, even), []valueMatcherTest[int]{
			{summary: "Both", value: 4, shouldAccept: true},
			{summary: "Even only", value: -2, shouldAccept: true},
			{summary: "Neither", value: -3, shouldAccept: false},
		})
	})

	t.Run("Descriptions", func(t *testing.T) {
		if got := streamassert.MatchAllOf(positive, even).String(); got != "be positive and be even" {
			t.Errorf("unexpected description %q", got)
		}
		if got := streamassert.MatchOneOf(positive, even).String(); got != "be positive or be even" {
			t.Errorf("unexpected description %q", got)
		}
	})

	t.Run("Used by expectation", func(t *testing.T) {
		capture := &streamassert.Capture{}
		log := streamassert.Log[int]{streamassert.Next(0, 3), streamassert.Next(1, 4)}

		exp := streamassert.ThatReporter(capture, log)
		exp.NextAtMatcher(0, streamassert.MatchAllOf(positive, even))
		exp.NextAtMatcher(1, streamassert.MatchAllOf(positive, even))

		messages := capture.Messages()
		if len(messages) != 1 || messages[0] != "expected to be positive and be even, got <3>" {
			t.Errorf("unexpected failures %q", messages)
		}
	})
}
