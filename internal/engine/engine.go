// Package engine evaluates parsed rules against decoded JSON documents.
//
// A document is a JSON object or an array of objects. The engine
// distinguishes three outcomes: every applicable rule held (Passed),
// at least one well-formed rule did not hold (Failed), and the
// document was excluded from checking by an ignore marker (Skipped).
// A rule that cannot be applied at all (missing field without a
// relaxing flag, operands that do not order) is an error, never a
// boolean result.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/rulecheck/internal/rule"
)

var (
	// ErrMissingField indicates a rule field absent from the document.
	ErrMissingField = errors.New("field not found")
	// ErrTypeMismatch indicates operands an ordering operator cannot compare.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidDocument indicates a document that is not an object or
	// an array of objects.
	ErrInvalidDocument = errors.New("invalid document")
)

// Result classifies the outcome of evaluating one document.
type Result int

const (
	Failed Result = iota
	Passed
	Skipped
)

func (r Result) String() string {
	switch r {
	case Failed:
		return "failed"
	case Passed:
		return "passed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Failure records one rule that evaluated false, with the value the
// document actually carried.
type Failure struct {
	Rule   rule.Rule
	Actual any
}

func (f Failure) String() string {
	return fmt.Sprintf("unsatisfied rule %q: %s is %v", f.Rule, f.Rule.Field, f.Actual)
}

// Outcome is the aggregate evaluation result for one document.
type Outcome struct {
	Result   Result
	Failures []Failure
}

// Reason renders the collected failures as a single diagnostic line.
func (o Outcome) Reason() string {
	parts := make([]string, 0, len(o.Failures))
	for _, failure := range o.Failures {
		parts = append(parts, failure.String())
	}
	return strings.Join(parts, "; ")
}

// Evaluate applies every non-ignored rule to the document. For array
// documents each element is checked and the aggregate is the logical
// AND across elements. Structural errors abort immediately; failed
// rules are collected so every rule is still checked.
func Evaluate(doc any, rules []rule.Rule, ignores IgnoreSet, policy Policy) (Outcome, error) {
	switch d := doc.(type) {
	case map[string]any:
		result, failures, err := evaluateObject(d, rules, ignores, policy)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Result: result, Failures: failures}, nil
	case []any:
		return evaluateSlice(d, rules, ignores, policy)
	default:
		return Outcome{}, fmt.Errorf("%w: expected object or array of objects, got %T", ErrInvalidDocument, doc)
	}
}

func evaluateSlice(elements []any, rules []rule.Rule, ignores IgnoreSet, policy Policy) (Outcome, error) {
	var failures []Failure
	evaluated := false

	for i, element := range elements {
		obj, ok := element.(map[string]any)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: element %d is %T, expected object", ErrInvalidDocument, i, element)
		}

		result, objFailures, err := evaluateObject(obj, rules, ignores, policy)
		if err != nil {
			return Outcome{}, err
		}
		if result == Skipped {
			continue
		}
		evaluated = true
		failures = append(failures, objFailures...)
	}

	if len(elements) > 0 && !evaluated {
		return Outcome{Result: Skipped}, nil
	}
	if len(failures) > 0 {
		return Outcome{Result: Failed, Failures: failures}, nil
	}
	return Outcome{Result: Passed}, nil
}

func evaluateObject(obj map[string]any, rules []rule.Rule, ignores IgnoreSet, policy Policy) (Result, []Failure, error) {
	if skipMarked(obj, ignores) {
		return Skipped, nil, nil
	}

	var failures []Failure
	for _, r := range rules {
		if ignores.Contains(r.Field) {
			continue
		}

		actual, ok := obj[r.Field]
		if !ok {
			switch {
			case policy.AllowMissing:
				continue
			case policy.MissingIsFalse:
				failures = append(failures, Failure{Rule: r, Actual: nil})
				continue
			default:
				return 0, nil, fmt.Errorf("%w: %q in rule %q", ErrMissingField, r.Field, r)
			}
		}

		holds, err := compare(actual, r, policy)
		if err != nil {
			return 0, nil, err
		}
		if !holds {
			failures = append(failures, Failure{Rule: r, Actual: actual})
		}
	}

	if len(failures) > 0 {
		return Failed, failures, nil
	}
	return Passed, nil, nil
}

// skipMarked reports whether the object carries an ignore marker: a
// boolean true field named in the ignore set, either at top level or
// inside an optional "flags" object (the annotation file convention).
func skipMarked(obj map[string]any, ignores IgnoreSet) bool {
	if len(ignores) == 0 {
		return false
	}
	if markedIn(obj, ignores) {
		return true
	}
	if markers, ok := obj["flags"].(map[string]any); ok {
		return markedIn(markers, ignores)
	}
	return false
}

func markedIn(obj map[string]any, ignores IgnoreSet) bool {
	for name := range ignores {
		if set, ok := obj[name].(bool); ok && set {
			return true
		}
	}
	return false
}
