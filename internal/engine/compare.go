package engine

import (
	"fmt"
	"strings"

	"github.com/jacoelho/rulecheck/internal/number"
	"github.com/jacoelho/rulecheck/internal/rule"
)

// compare applies one rule's operator to the document value and the
// literal operand. Ordering operators require both sides numeric or
// both sides string; equality operators accept any pairing, with
// values of different kinds simply unequal.
func compare(actual any, r rule.Rule, policy Policy) (bool, error) {
	if r.Op.IsOrdering() {
		return compareOrdered(actual, r, policy)
	}

	equal := equalValues(actual, r.Operand, policy.CaseInsensitive)
	if r.Op == rule.OpNotEqual {
		return !equal, nil
	}
	return equal, nil
}

func compareOrdered(actual any, r rule.Rule, policy Policy) (bool, error) {
	if r.Operand.Kind == rule.KindNumber {
		actualNumber, ok := number.ToFloat64(actual)
		if !ok {
			return false, typeMismatch(r, actual)
		}
		return orderHolds(r.Op, compareFloats(actualNumber, r.Operand.Number)), nil
	}

	if r.Operand.Kind == rule.KindString {
		actualString, ok := actual.(string)
		if !ok {
			return false, typeMismatch(r, actual)
		}
		expected := r.Operand.Text
		if policy.CaseInsensitive {
			actualString = strings.ToLower(actualString)
			expected = strings.ToLower(expected)
		}
		return orderHolds(r.Op, strings.Compare(actualString, expected)), nil
	}

	return false, typeMismatch(r, actual)
}

func typeMismatch(r rule.Rule, actual any) error {
	return fmt.Errorf("%w: rule %q cannot order %T against %s operand", ErrTypeMismatch, r, actual, r.Operand.Kind)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func orderHolds(op rule.Operator, cmp int) bool {
	switch op {
	case rule.OpLess:
		return cmp < 0
	case rule.OpLessOrEqual:
		return cmp <= 0
	case rule.OpGreater:
		return cmp > 0
	case rule.OpGreaterOrEqual:
		return cmp >= 0
	default:
		return false
	}
}

func equalValues(actual any, operand rule.Operand, foldCase bool) bool {
	switch operand.Kind {
	case rule.KindNumber:
		actualNumber, ok := number.ToFloat64(actual)
		return ok && actualNumber == operand.Number
	case rule.KindBool:
		actualBool, ok := actual.(bool)
		return ok && actualBool == operand.Bool
	case rule.KindString:
		actualString, ok := actual.(string)
		if !ok {
			return false
		}
		if foldCase {
			return strings.EqualFold(actualString, operand.Text)
		}
		return actualString == operand.Text
	default:
		return false
	}
}
