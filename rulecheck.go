// Package rulecheck validates JSON documents against comparison rule
// expressions such as "TL==1" or "score>=0.5".
//
// A Validator is built once from rule expressions, behavior flags, and
// field names to ignore. Construction fails fast on the first
// malformed rule or unrecognized flag. The Validator is immutable
// afterwards and safe for concurrent use across documents.
//
// Validation distinguishes two negative outcomes: a rule that was
// checked and did not hold yields false, while a rule that could not
// be checked at all (missing field, operands that do not order,
// malformed input) yields an error.
package rulecheck

import (
	"fmt"
	"strings"

	"github.com/jacoelho/rulecheck/internal/document"
	"github.com/jacoelho/rulecheck/internal/engine"
	"github.com/jacoelho/rulecheck/internal/rule"
)

// Error sentinels re-exported for errors.Is checks at the API boundary.
var (
	ErrParse           = rule.ErrParse
	ErrUnknownFlag     = engine.ErrUnknownFlag
	ErrFlagConflict    = engine.ErrFlagConflict
	ErrMissingField    = engine.ErrMissingField
	ErrTypeMismatch    = engine.ErrTypeMismatch
	ErrInvalidDocument = engine.ErrInvalidDocument
	ErrSyntax          = document.ErrSyntax
)

// Result classifies the outcome of checking one document.
type Result = engine.Result

const (
	Failed  = engine.Failed
	Passed  = engine.Passed
	Skipped = engine.Skipped
)

// Outcome carries the result plus per-rule failure diagnostics.
type Outcome = engine.Outcome

// Validator holds a parsed, immutable rule set.
type Validator struct {
	exprs   []string
	rules   []rule.Rule
	flags   []string
	ignores []string

	policy engine.Policy
	ignore engine.IgnoreSet
}

// New parses rules and flags into a Validator. The first malformed
// rule or unrecognized flag aborts construction; no partially usable
// Validator is ever returned.
func New(rules []string, flags []string, ignores []string) (*Validator, error) {
	parsed, err := rule.ParseAll(rules)
	if err != nil {
		return nil, err
	}

	policy, err := engine.ParsePolicy(flags)
	if err != nil {
		return nil, err
	}

	return &Validator{
		exprs:   append([]string(nil), rules...),
		rules:   parsed,
		flags:   append([]string(nil), flags...),
		ignores: append([]string(nil), ignores...),
		policy:  policy,
		ignore:  engine.NewIgnoreSet(ignores),
	}, nil
}

// Check evaluates an already decoded JSON value and returns the full
// outcome, including which rules failed.
func (v *Validator) Check(doc any) (Outcome, error) {
	return engine.Evaluate(doc, v.rules, v.ignore, v.policy)
}

// Validate reports whether the document satisfies every applicable
// rule. A document excluded by an ignore marker is not satisfied.
func (v *Validator) Validate(doc any) (bool, error) {
	outcome, err := v.Check(doc)
	if err != nil {
		return false, err
	}
	return outcome.Result == Passed, nil
}

// ValidateString decodes raw JSON text and validates it.
func (v *Validator) ValidateString(text string) (bool, error) {
	doc, err := document.FromString(text)
	if err != nil {
		return false, err
	}
	return v.Validate(doc)
}

// ValidateFile reads and decodes a JSON file and validates it.
func (v *Validator) ValidateFile(path string) (bool, error) {
	doc, err := document.FromFile(path)
	if err != nil {
		return false, err
	}
	return v.Validate(doc)
}

// Rules returns the rule expressions the Validator was built with.
func (v *Validator) Rules() []string {
	return append([]string(nil), v.exprs...)
}

// String renders the Validator and its configuration.
func (v *Validator) String() string {
	return fmt.Sprintf("Validator([%s], [%s], [%s])",
		quoteJoin(v.exprs), quoteJoin(v.flags), quoteJoin(v.ignores))
}

func quoteJoin(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, "'"+item+"'")
	}
	return strings.Join(quoted, ", ")
}
