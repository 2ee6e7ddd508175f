// Package structure defines the collaborators that connect an alignment to
// the 3-D structures shown in an external viewer, and the command sets
// generated for that viewer.
package structure

// Structure identifies one structure file loaded in the viewer and the model
// number the viewer assigned to it.
type Structure struct {
	file  string
	model int
}

// NewStructure creates a Structure.
func NewStructure(file string, model int) Structure {
	return Structure{file: file, model: model}
}

// File returns the structure file identifier.
func (s Structure) File() string { return s.file }

// Model returns the viewer model number.
func (s Structure) Model() int { return s.model }

// Mapping links one aligned sequence to one chain of a structure file.
// Columns are 0-based alignment positions.
type Mapping struct {
	sequenceID string
	chain      string
	residues   map[int]int
}

// NewMapping creates a Mapping from a column to residue-number table.
func NewMapping(sequenceID, chain string, residues map[int]int) Mapping {
	return Mapping{sequenceID: sequenceID, chain: chain, residues: residues}
}

// SequenceID returns the aligned sequence identifier.
func (m Mapping) SequenceID() string { return m.sequenceID }

// Chain returns the structure chain code, possibly empty.
func (m Mapping) Chain() string { return m.chain }

// ResidueFor returns the structure residue number at column, if any.
func (m Mapping) ResidueFor(column int) (int, bool) {
	r, ok := m.residues[column]
	return r, ok
}

// IsGap reports whether an aligned character is a gap.
func IsGap(c byte) bool {
	return c == '-' || c == '.' || c == ' '
}
