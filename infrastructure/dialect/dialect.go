// Package dialect renders residue models into the command languages of
// external structure viewers.
package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/helixml/molsync/domain/atomspec"
	"github.com/helixml/molsync/domain/colour"
)

// ErrUnknownDialect indicates a dialect name is not supported.
var ErrUnknownDialect = errors.New("unknown dialect")

// Dialect is one viewer's command syntax.
type Dialect interface {
	// Name returns the dialect identifier used in configuration.
	Name() string
	// AtomSpec renders the residue selection for m.
	AtomSpec(m *atomspec.Model) string
	// ColourClause renders a command colouring the residues of m.
	ColourClause(c colour.RGB, m *atomspec.Model) string
	// SetAttributeClause renders a command setting a residue attribute on
	// the residues of m. attribute and value are raw, unsanitised text.
	SetAttributeClause(attribute, value string, m *atomspec.Model) string
	// ColourByChain returns the clauses colouring every chain distinctly.
	ColourByChain() []string
	// ColourByCharge returns the clauses colouring charged and cysteine
	// residues.
	ColourByCharge() []string
	// Separator joins clauses into one command line.
	Separator() string
}

// Dialect names.
const (
	NameChimera  = "chimera"
	NameChimeraX = "chimerax"
	NameJmol     = "jmol"
)

// Names returns the supported dialect names.
func Names() []string {
	return []string{NameChimera, NameChimeraX, NameJmol}
}

// ForName returns the dialect registered under name (case-insensitive).
func ForName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameChimera:
		return Chimera{}, nil
	case NameChimeraX:
		return ChimeraX{}, nil
	case NameJmol:
		return Jmol{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}
