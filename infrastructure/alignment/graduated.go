package alignment

import (
	"github.com/helixml/molsync/domain/colour"
	"gonum.org/v1/gonum/floats"
)

// ScoreColour colours residues by the score of a feature type, interpolated
// linearly from low to high across the observed score range. Residues
// without a scored feature of that type have no colour. It implements
// structure.ColourResolver.
type ScoreColour struct {
	table *FeatureTable
	kind  string
	low   colour.RGB
	high  colour.RGB
	min   float64
	max   float64
	valid bool
}

// NewScoreColour creates a ScoreColour for features of kind.
func NewScoreColour(table *FeatureTable, kind string, low, high colour.RGB) *ScoreColour {
	s := &ScoreColour{table: table, kind: kind, low: low, high: high}

	var scores []float64
	for _, f := range table.Features(kind) {
		if score, ok := f.Score(); ok {
			scores = append(scores, score)
		}
	}
	if len(scores) > 0 {
		s.min = floats.Min(scores)
		s.max = floats.Max(scores)
		s.valid = true
	}
	return s
}

// Range returns the observed score range, or false if no feature of the
// type carries a score.
func (s *ScoreColour) Range() (float64, float64, bool) {
	return s.min, s.max, s.valid
}

// ColourFor implements structure.ColourResolver.
func (s *ScoreColour) ColourFor(sequenceID string, column int) (colour.RGB, bool) {
	if !s.valid {
		return colour.RGB{}, false
	}
	f, ok := s.table.FeatureAt(sequenceID, column, s.kind)
	if !ok {
		return colour.RGB{}, false
	}
	score, ok := f.Score()
	if !ok {
		return colour.RGB{}, false
	}
	if s.max == s.min {
		return s.high, true
	}
	return s.low.Interpolate(s.high, (score-s.min)/(s.max-s.min)), true
}
