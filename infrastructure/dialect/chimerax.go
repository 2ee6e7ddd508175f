package dialect

import (
	"strconv"
	"strings"

	"github.com/helixml/molsync/domain/atomspec"
	"github.com/helixml/molsync/domain/colour"
)

// ChimeraX renders UCSF ChimeraX commands, e.g.
//
//	color #1/A:2-5,7/B:3 #ff0000
type ChimeraX struct{}

// Name implements Dialect.
func (ChimeraX) Name() string { return NameChimeraX }

// AtomSpec implements Dialect. Models are space-separated; a chain without
// a code is written without the /chain part.
func (ChimeraX) AtomSpec(m *atomspec.Model) string {
	var sb strings.Builder
	for i, model := range m.Models() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(model))
		for _, chain := range m.Chains(model) {
			if chain != "" {
				sb.WriteByte('/')
				sb.WriteString(chain)
			}
			sb.WriteByte(':')
			for j, r := range m.Ranges(model, chain) {
				if j > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(r.String())
			}
		}
	}
	return sb.String()
}

// ColourClause implements Dialect.
func (c ChimeraX) ColourClause(rgb colour.RGB, m *atomspec.Model) string {
	return "color " + c.AtomSpec(m) + " " + rgb.Hex()
}

// SetAttributeClause implements Dialect.
func (c ChimeraX) SetAttributeClause(attribute, value string, m *atomspec.Model) string {
	return "setattr " + c.AtomSpec(m) + " res " + AttributeName(attribute) + " " + QuoteValue(value) + " create true"
}

// ColourByChain implements Dialect.
func (ChimeraX) ColourByChain() []string {
	return []string{"color bychain"}
}

// ColourByCharge implements Dialect.
func (ChimeraX) ColourByCharge() []string {
	return []string{
		"color white",
		"color :ASP,GLU red",
		"color :LYS,ARG blue",
		"color :CYS yellow",
	}
}

// Separator implements Dialect.
func (ChimeraX) Separator() string { return "; " }
