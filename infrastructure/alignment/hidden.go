package alignment

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidColumnRange indicates a hidden-column range could not be parsed.
var ErrInvalidColumnRange = errors.New("invalid column range")

// HiddenColumns is a set of collapsed alignment columns held as sorted,
// merged 0-based inclusive regions. It implements structure.HiddenColumns.
type HiddenColumns struct {
	regions [][2]int
}

// NewHiddenColumns creates an empty HiddenColumns.
func NewHiddenColumns() *HiddenColumns {
	return &HiddenColumns{}
}

// ParseHiddenColumns reads 1-based inclusive ranges such as "3-5" or "9".
func ParseHiddenColumns(ranges []string) (*HiddenColumns, error) {
	h := NewHiddenColumns()
	for _, text := range ranges {
		start, end, err := parseColumnRange(text)
		if err != nil {
			return nil, err
		}
		h.Hide(start-1, end-1)
	}
	return h, nil
}

func parseColumnRange(text string) (int, int, error) {
	text = strings.TrimSpace(text)
	lo, hi, found := strings.Cut(text, "-")
	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidColumnRange, text)
	}
	end := start
	if found {
		end, err = strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidColumnRange, text)
		}
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidColumnRange, text)
	}
	return start, end, nil
}

// Hide collapses 0-based columns start..end inclusive.
func (h *HiddenColumns) Hide(start, end int) {
	h.regions = append(h.regions, [2]int{start, end})
	slices.SortFunc(h.regions, func(a, b [2]int) int { return a[0] - b[0] })

	merged := h.regions[:1]
	for _, r := range h.regions[1:] {
		last := &merged[len(merged)-1]
		if r[0] <= last[1]+1 {
			last[1] = max(last[1], r[1])
			continue
		}
		merged = append(merged, r)
	}
	h.regions = merged
}

// IsHidden reports whether column is collapsed.
func (h *HiddenColumns) IsHidden(column int) bool {
	for _, r := range h.regions {
		if column < r[0] {
			return false
		}
		if column <= r[1] {
			return true
		}
	}
	return false
}

// AdjustForHidden returns the position of column in the visible view,
// counting only the visible columns before it.
func (h *HiddenColumns) AdjustForHidden(column int) int {
	adjusted := column
	for _, r := range h.regions {
		if r[0] >= column {
			break
		}
		adjusted -= min(r[1], column-1) - r[0] + 1
	}
	return adjusted
}

// Regions returns the hidden regions as 0-based inclusive pairs.
func (h *HiddenColumns) Regions() [][2]int {
	return slices.Clone(h.regions)
}
