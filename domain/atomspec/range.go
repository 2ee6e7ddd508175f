// Package atomspec models sets of structure residues grouped by model number
// and chain, the unit that viewer commands select on.
package atomspec

import (
	"fmt"
	"strconv"
)

// Range is an inclusive span of 1-based residue numbers within one chain of
// one structure model. Immutable value object.
type Range struct {
	start int
	end   int
}

// NewRange creates a Range. It panics if start < 1 or start > end.
func NewRange(start, end int) Range {
	if start < 1 || start > end {
		panic(fmt.Sprintf("atomspec: invalid range %d-%d", start, end))
	}
	return Range{start: start, end: end}
}

// Start returns the first residue number.
func (r Range) Start() int { return r.start }

// End returns the last residue number.
func (r Range) End() int { return r.end }

// Len returns the number of residues covered.
func (r Range) Len() int { return r.end - r.start + 1 }

// Touches reports whether r and other overlap or are exactly adjacent.
func (r Range) Touches(other Range) bool {
	return other.start <= r.end+1 && other.end >= r.start-1
}

// String renders a singleton as "8" and a span as "2-5".
func (r Range) String() string {
	if r.start == r.end {
		return strconv.Itoa(r.start)
	}
	return strconv.Itoa(r.start) + "-" + strconv.Itoa(r.end)
}

// ChainRanges is the sorted, fully merged set of ranges for one (model, chain).
// No two ranges overlap or touch.
type ChainRanges struct {
	ranges []Range
}

// Add inserts r, merging it with every range it touches. Merging is
// transitive: a widened range absorbs any further neighbours it now touches.
func (c *ChainRanges) Add(r Range) {
	out := make([]Range, 0, len(c.ranges)+1)
	merged := r
	placed := false
	for _, existing := range c.ranges {
		switch {
		case merged.Touches(existing):
			merged = Range{start: min(merged.start, existing.start), end: max(merged.end, existing.end)}
		case existing.end < merged.start:
			out = append(out, existing)
		default:
			if !placed {
				out = append(out, merged)
				placed = true
			}
			out = append(out, existing)
		}
	}
	if !placed {
		out = append(out, merged)
	}
	c.ranges = out
}

// Ranges returns a copy of the ranges in ascending order.
func (c ChainRanges) Ranges() []Range {
	out := make([]Range, len(c.ranges))
	copy(out, c.ranges)
	return out
}

// Residues returns the total number of residues covered.
func (c ChainRanges) Residues() int {
	n := 0
	for _, r := range c.ranges {
		n += r.Len()
	}
	return n
}
