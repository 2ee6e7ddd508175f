package structure

import "github.com/helixml/molsync/domain/colour"

// PositionMapper returns the sequence-to-structure mappings of a file. A file
// with no mapping returns nil.
type PositionMapper interface {
	ForFile(file string) []Mapping
}

// ColourResolver returns the display colour of a sequence at a column.
// Implementations are not required to be safe for concurrent use.
type ColourResolver interface {
	ColourFor(sequenceID string, column int) (colour.RGB, bool)
}

// HiddenColumns reports which alignment columns are collapsed from view.
type HiddenColumns interface {
	IsHidden(column int) bool
	// AdjustForHidden converts an alignment column to its position in the
	// visible view. Used for labels only.
	AdjustForHidden(column int) int
}

// AttributeResolver returns the value of a named feature for a sequence at
// a column.
type AttributeResolver interface {
	AttributeValue(sequenceID string, column int, feature string) (string, bool)
}

// Alignment gives access to aligned characters.
type Alignment interface {
	Width() int
	Residue(sequenceID string, column int) (byte, bool)
}

// NoHiddenColumns is a HiddenColumns with every column visible.
type NoHiddenColumns struct{}

// IsHidden always returns false.
func (NoHiddenColumns) IsHidden(int) bool { return false }

// AdjustForHidden returns column unchanged.
func (NoHiddenColumns) AdjustForHidden(column int) int { return column }
