package dialect

import (
	"strconv"
	"strings"

	"github.com/helixml/molsync/domain/atomspec"
	"github.com/helixml/molsync/domain/colour"
)

// Jmol renders Jmol script, e.g.
//
//	select 2-5:A/1.1|7:A/1.1;color[255,0,0]
type Jmol struct{}

// Name implements Dialect.
func (Jmol) Name() string { return NameJmol }

// AtomSpec implements Dialect. Every range is written in full as
// start-end:chain/model.1 and ranges are '|'-joined.
func (Jmol) AtomSpec(m *atomspec.Model) string {
	var sb strings.Builder
	first := true
	for _, model := range m.Models() {
		for _, chain := range m.Chains(model) {
			for _, r := range m.Ranges(model, chain) {
				if !first {
					sb.WriteByte('|')
				}
				first = false
				sb.WriteString(r.String())
				if chain != "" {
					sb.WriteByte(':')
					sb.WriteString(chain)
				}
				sb.WriteByte('/')
				sb.WriteString(strconv.Itoa(model))
				sb.WriteString(".1")
			}
		}
	}
	return sb.String()
}

// ColourClause implements Dialect.
func (j Jmol) ColourClause(rgb colour.RGB, m *atomspec.Model) string {
	return "select " + j.AtomSpec(m) + ";color" + rgb.Decimal()
}

// SetAttributeClause implements Dialect. Jmol has no named residue
// attributes, so the value is stored as a user property on the atoms.
func (j Jmol) SetAttributeClause(attribute, value string, m *atomspec.Model) string {
	return "{" + j.AtomSpec(m) + "}.property_" + AttributeName(attribute) + " = " + QuoteValue(value)
}

// ColourByChain implements Dialect. A colour applies to the preceding
// select, so each pair is one clause.
func (Jmol) ColourByChain() []string {
	return []string{"select *;color chain"}
}

// ColourByCharge implements Dialect.
func (Jmol) ColourByCharge() []string {
	return []string{
		"select *;color white",
		"select ASP,GLU;color red",
		"select LYS,ARG;color blue",
		"select CYS;color yellow",
	}
}

// Separator implements Dialect.
func (Jmol) Separator() string { return ";" }
