package dialect

import (
	"github.com/helixml/molsync/domain/atomspec"
	"github.com/helixml/molsync/domain/colour"
)

// ColourClauses renders one colour clause per colour, in the order the
// colours were first used. Empty models render nothing.
func ColourClauses(d Dialect, colours *atomspec.KeyedMap[colour.RGB]) []string {
	clauses := make([]string, 0, colours.Len())
	for _, c := range colours.Keys() {
		m, _ := colours.Lookup(c)
		if m.IsEmpty() {
			continue
		}
		clauses = append(clauses, d.ColourClause(c, m))
	}
	return clauses
}

// AttributeClauses renders one set-attribute clause per distinct value of
// each feature, features and values in first-use order.
func AttributeClauses(d Dialect, features *atomspec.FeatureMap) []string {
	var clauses []string
	for _, feature := range features.Features() {
		values := features.Values(feature)
		for _, value := range values.Keys() {
			m, _ := values.Lookup(value)
			if m.IsEmpty() {
				continue
			}
			clauses = append(clauses, d.SetAttributeClause(feature, value, m))
		}
	}
	return clauses
}

// BuildColourCommands renders and packs colour clauses.
func BuildColourCommands(d Dialect, colours *atomspec.KeyedMap[colour.RGB], maxLength int) Chunks {
	return Pack(ColourClauses(d, colours), d.Separator(), maxLength)
}

// BuildSetAttributeCommands renders and packs set-attribute clauses.
func BuildSetAttributeCommands(d Dialect, features *atomspec.FeatureMap, maxLength int) Chunks {
	return Pack(AttributeClauses(d, features), d.Separator(), maxLength)
}
