// Package rule parses comparison rule expressions of the form
// <field><operator><literal>, e.g. "TL==1" or "kind!=draft".
package rule

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel error for all rule parsing failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrParse = errors.New("invalid rule")

func parseError(expr string, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrParse, expr, fmt.Sprintf(format, args...))
}

// Operator is one of the six comparison tokens a rule may use.
type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
)

// IsOrdering reports whether the operator imposes an order on its
// operands rather than testing equality.
func (o Operator) IsOrdering() bool {
	switch o {
	case OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		return true
	default:
		return false
	}
}

// Kind discriminates the literal operand variants.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Operand is a literal value as written in a rule expression.
// The raw source text is kept so rendering a parsed rule reproduces
// the expression it came from.
type Operand struct {
	Kind   Kind
	Number float64
	Bool   bool
	Text   string

	raw string
}

func (o Operand) String() string { return o.raw }

// Rule is an immutable parsed comparison: field, operator, operand.
type Rule struct {
	Field   string
	Op      Operator
	Operand Operand
}

// String renders the canonical form of the rule. Parsing the result
// yields a rule equal to the receiver.
func (r Rule) String() string {
	return r.Field + string(r.Op) + r.Operand.raw
}

// Parse converts one rule expression into a Rule. Surrounding
// whitespace is trimmed; whitespace around the operator is accepted.
func Parse(expr string) (Rule, error) {
	s := scanner{expr: expr, input: expr}
	s.skipSpace()

	field, err := s.lexIdentifier()
	if err != nil {
		return Rule{}, err
	}

	s.skipSpace()
	op, err := s.lexOperator()
	if err != nil {
		return Rule{}, err
	}

	operand, err := s.lexOperand()
	if err != nil {
		return Rule{}, err
	}

	return Rule{Field: field, Op: op, Operand: operand}, nil
}

// ParseAll parses every expression, failing fast on the first invalid
// one. A partially parsed rule set is never returned.
func ParseAll(exprs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(exprs))
	for _, expr := range exprs {
		parsed, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, parsed)
	}
	return rules, nil
}
