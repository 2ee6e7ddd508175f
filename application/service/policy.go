package service

import (
	"fmt"
	"strings"
)

// DuplicateResiduePolicy decides what happens when more than one alignment
// column resolves to the same structure residue during a pass.
type DuplicateResiduePolicy int

const (
	// FirstColourWins records a residue of a (model, chain) at most once per
	// pass; later columns reaching it are ignored.
	FirstColourWins DuplicateResiduePolicy = iota
	// ConsecutiveOnly only collapses runs of adjacent columns that resolve
	// to the same residue. Non-adjacent repeats are recorded again and may
	// land under a different key.
	ConsecutiveOnly
)

// String implements fmt.Stringer.
func (p DuplicateResiduePolicy) String() string {
	switch p {
	case ConsecutiveOnly:
		return "consecutive"
	default:
		return "first"
	}
}

// ParseDuplicateResiduePolicy reads "first" or "consecutive".
func ParseDuplicateResiduePolicy(s string) (DuplicateResiduePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return FirstColourWins, nil
	case "consecutive":
		return ConsecutiveOnly, nil
	default:
		return 0, fmt.Errorf("%w: duplicate residue policy %q", ErrInvalidPolicy, s)
	}
}

// HiddenColumnPolicy decides how residues under hidden columns are coloured.
type HiddenColumnPolicy int

const (
	// OverrideHidden colours residues under hidden columns with the hidden
	// colour, whatever the resolver says.
	OverrideHidden HiddenColumnPolicy = iota
	// ComputedColour ignores hidden columns and uses the resolved colour.
	ComputedColour
)

// String implements fmt.Stringer.
func (p HiddenColumnPolicy) String() string {
	switch p {
	case ComputedColour:
		return "computed"
	default:
		return "override"
	}
}

// ParseHiddenColumnPolicy reads "override" or "computed".
func ParseHiddenColumnPolicy(s string) (HiddenColumnPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "override":
		return OverrideHidden, nil
	case "computed":
		return ComputedColour, nil
	default:
		return 0, fmt.Errorf("%w: hidden column policy %q", ErrInvalidPolicy, s)
	}
}
