// Package alignment loads alignments, sequence features and session files,
// and implements the structure collaborators over them.
package alignment

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/helixml/molsync/domain/structure"
)

// ErrDuplicateSequence indicates two aligned sequences share an identifier.
var ErrDuplicateSequence = errors.New("duplicate sequence id")

// Alignment is an in-memory multiple sequence alignment. It implements
// structure.Alignment.
type Alignment struct {
	ids       []string
	rows      map[string][]byte
	positions map[string][]int
	width     int
}

// NewAlignment creates an Alignment from parallel id and row slices. Rows
// may differ in length; columns past the end of a row read as absent.
func NewAlignment(ids []string, rows []string) (*Alignment, error) {
	if len(ids) != len(rows) {
		return nil, fmt.Errorf("alignment: %d ids for %d rows", len(ids), len(rows))
	}
	a := &Alignment{
		rows:      make(map[string][]byte, len(ids)),
		positions: make(map[string][]int, len(ids)),
	}
	for i, id := range ids {
		if err := a.add(id, []byte(rows[i])); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Alignment) add(id string, row []byte) error {
	if _, ok := a.rows[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSequence, id)
	}
	a.ids = append(a.ids, id)
	a.rows[id] = row
	a.width = max(a.width, len(row))

	positions := make([]int, len(row))
	pos := 0
	for i, c := range row {
		if structure.IsGap(c) {
			positions[i] = 0
			continue
		}
		pos++
		positions[i] = pos
	}
	a.positions[id] = positions
	return nil
}

// LoadFASTA reads an aligned FASTA stream.
func LoadFASTA(r io.Reader) (*Alignment, error) {
	a := &Alignment{
		rows:      make(map[string][]byte),
		positions: make(map[string][]int),
	}
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("load fasta: unexpected sequence type %T", sc.Seq())
		}
		row := append([]byte(nil), alphabet.LettersToBytes(s.Seq)...)
		if err := a.add(s.Name(), row); err != nil {
			return nil, fmt.Errorf("load fasta: %w", err)
		}
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("load fasta: %w", err)
	}
	return a, nil
}

// LoadFASTAFile reads an aligned FASTA file.
func LoadFASTAFile(path string) (*Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alignment: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadFASTA(f)
}

// IDs returns the sequence identifiers in file order.
func (a *Alignment) IDs() []string {
	out := make([]string, len(a.ids))
	copy(out, a.ids)
	return out
}

// Width returns the number of columns of the longest row.
func (a *Alignment) Width() int { return a.width }

// Residue returns the aligned character of sequenceID at column.
func (a *Alignment) Residue(sequenceID string, column int) (byte, bool) {
	row, ok := a.rows[sequenceID]
	if !ok || column < 0 || column >= len(row) {
		return 0, false
	}
	return row[column], true
}

// SequencePosition returns the 1-based ungapped position of the residue at
// column, or false if the column is a gap.
func (a *Alignment) SequencePosition(sequenceID string, column int) (int, bool) {
	positions, ok := a.positions[sequenceID]
	if !ok || column < 0 || column >= len(positions) || positions[column] == 0 {
		return 0, false
	}
	return positions[column], true
}
