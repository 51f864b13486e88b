package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFlag indicates a behavior flag outside the recognized set.
	ErrUnknownFlag = errors.New("unknown flag")
	// ErrFlagConflict indicates two flags that prescribe contradictory behavior.
	ErrFlagConflict = errors.New("conflicting flags")
)

// Recognized behavior flags. The set is closed: a typo must fail at
// construction instead of silently changing validation semantics.
const (
	FlagAllowMissing    = "allow-missing"    // absent rule field counts as satisfied
	FlagMissingIsFalse  = "missing-is-false" // absent rule field counts as failed
	FlagCaseInsensitive = "case-insensitive" // string comparisons fold case
)

// Policy is the parsed form of the behavior flags.
type Policy struct {
	AllowMissing    bool
	MissingIsFalse  bool
	CaseInsensitive bool
}

// ParsePolicy validates flag tokens into a Policy, failing on the
// first unknown token.
func ParsePolicy(flags []string) (Policy, error) {
	var p Policy
	for _, flag := range flags {
		switch flag {
		case FlagAllowMissing:
			p.AllowMissing = true
		case FlagMissingIsFalse:
			p.MissingIsFalse = true
		case FlagCaseInsensitive:
			p.CaseInsensitive = true
		default:
			return Policy{}, fmt.Errorf("%w: %q", ErrUnknownFlag, flag)
		}
	}

	if p.AllowMissing && p.MissingIsFalse {
		return Policy{}, fmt.Errorf("%w: %q and %q", ErrFlagConflict, FlagAllowMissing, FlagMissingIsFalse)
	}

	return p, nil
}

// IgnoreSet holds field names excluded from rule evaluation.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from field names.
func NewIgnoreSet(names []string) IgnoreSet {
	set := make(IgnoreSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether the field name is ignored.
func (s IgnoreSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}
