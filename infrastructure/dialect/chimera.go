package dialect

import (
	"github.com/helixml/molsync/domain/atomspec"
	"github.com/helixml/molsync/domain/colour"
)

// Chimera renders UCSF Chimera commands, e.g.
//
//	color #ff0000 #1:2-5.A,7.A
type Chimera struct{}

// Name implements Dialect.
func (Chimera) Name() string { return NameChimera }

// AtomSpec implements Dialect.
func (Chimera) AtomSpec(m *atomspec.Model) string { return m.String() }

// ColourClause implements Dialect.
func (c Chimera) ColourClause(rgb colour.RGB, m *atomspec.Model) string {
	return "color " + rgb.Hex() + " " + c.AtomSpec(m)
}

// SetAttributeClause implements Dialect.
func (c Chimera) SetAttributeClause(attribute, value string, m *atomspec.Model) string {
	return "setattr r " + AttributeName(attribute) + " " + QuoteValue(value) + " " + c.AtomSpec(m)
}

// ColourByChain implements Dialect.
func (Chimera) ColourByChain() []string {
	return []string{"rainbow chain"}
}

// ColourByCharge implements Dialect.
func (Chimera) ColourByCharge() []string {
	return []string{
		"color white",
		"color red ::ASP",
		"color red ::GLU",
		"color blue ::LYS",
		"color blue ::ARG",
		"color yellow ::CYS",
	}
}

// Separator implements Dialect.
func (Chimera) Separator() string { return "; " }
