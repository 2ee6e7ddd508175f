package alignment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/helixml/molsync/domain/colour"
	"github.com/helixml/molsync/domain/structure"
)

// ErrUnknownScheme indicates a colour scheme name is not supported.
var ErrUnknownScheme = errors.New("unknown colour scheme")

// Scheme names.
const (
	SchemeZappo  = "zappo"
	SchemeTaylor = "taylor"
	SchemeScore  = "score"
)

// ResidueScheme colours each aligned residue by its amino-acid letter. It
// implements structure.ColourResolver.
type ResidueScheme struct {
	name      string
	alignment structure.Alignment
	colours   map[byte]colour.RGB
}

// NewResidueScheme creates a ResidueScheme from a letter table. Lookups
// are case-insensitive.
func NewResidueScheme(name string, aln structure.Alignment, table map[string]colour.RGB) *ResidueScheme {
	colours := make(map[byte]colour.RGB)
	for letters, c := range table {
		for i := 0; i < len(letters); i++ {
			colours[upper(letters[i])] = c
		}
	}
	return &ResidueScheme{name: name, alignment: aln, colours: colours}
}

// Name returns the scheme name.
func (s *ResidueScheme) Name() string { return s.name }

// ColourFor implements structure.ColourResolver. Gaps and letters outside
// the table have no colour.
func (s *ResidueScheme) ColourFor(sequenceID string, column int) (colour.RGB, bool) {
	c, ok := s.alignment.Residue(sequenceID, column)
	if !ok || structure.IsGap(c) {
		return colour.RGB{}, false
	}
	rgb, ok := s.colours[upper(c)]
	return rgb, ok
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Zappo colours residues by physico-chemical class.
func Zappo(aln structure.Alignment) *ResidueScheme {
	return NewResidueScheme(SchemeZappo, aln, map[string]colour.RGB{
		"ILVAM": colour.New(0xff, 0xaf, 0xaf),
		"FWY":   colour.New(0xff, 0xc8, 0x00),
		"KRH":   colour.New(0x64, 0x64, 0xff),
		"DE":    colour.New(0xff, 0x00, 0x00),
		"STNQ":  colour.New(0x00, 0xff, 0x00),
		"PG":    colour.New(0xff, 0x00, 0xff),
		"C":     colour.New(0xff, 0xff, 0x00),
	})
}

// Taylor gives every amino acid its own colour.
func Taylor(aln structure.Alignment) *ResidueScheme {
	return NewResidueScheme(SchemeTaylor, aln, map[string]colour.RGB{
		"A": colour.New(0xcc, 0xff, 0x00),
		"R": colour.New(0x00, 0x00, 0xff),
		"N": colour.New(0xcc, 0x00, 0xff),
		"D": colour.New(0xff, 0x00, 0x00),
		"C": colour.New(0xff, 0xff, 0x00),
		"Q": colour.New(0xff, 0x00, 0xcc),
		"E": colour.New(0xff, 0x00, 0x66),
		"G": colour.New(0xff, 0x99, 0x00),
		"H": colour.New(0x00, 0x66, 0xff),
		"I": colour.New(0x66, 0xff, 0x00),
		"L": colour.New(0x33, 0xff, 0x00),
		"K": colour.New(0x66, 0x00, 0xff),
		"M": colour.New(0x00, 0xff, 0x00),
		"F": colour.New(0x00, 0xff, 0x66),
		"P": colour.New(0xff, 0xcc, 0x00),
		"S": colour.New(0xff, 0x33, 0x00),
		"T": colour.New(0xff, 0x66, 0x00),
		"W": colour.New(0x00, 0xcc, 0xff),
		"Y": colour.New(0x00, 0xff, 0xcc),
		"V": colour.New(0x99, 0xff, 0x00),
	})
}

// SchemeForName returns a residue scheme by name.
func SchemeForName(name string, aln structure.Alignment) (*ResidueScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemeZappo:
		return Zappo(aln), nil
	case SchemeTaylor:
		return Taylor(aln), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}
