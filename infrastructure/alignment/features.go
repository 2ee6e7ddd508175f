package alignment

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
)

// Feature is one annotated span of a sequence, in 1-based inclusive
// ungapped sequence positions.
type Feature struct {
	sequenceID string
	kind       string
	start      int
	end        int
	value      string
	score      float64
	hasScore   bool
}

// NewFeature creates a Feature without a score.
func NewFeature(sequenceID, kind string, start, end int, value string) Feature {
	return Feature{sequenceID: sequenceID, kind: kind, start: start, end: end, value: value}
}

// WithScore returns a copy of f carrying score.
func (f Feature) WithScore(score float64) Feature {
	f.score = score
	f.hasScore = true
	return f
}

// SequenceID returns the annotated sequence.
func (f Feature) SequenceID() string { return f.sequenceID }

// Kind returns the feature type, e.g. "Pfam" or "metal binding".
func (f Feature) Kind() string { return f.kind }

// Start returns the first annotated position.
func (f Feature) Start() int { return f.start }

// End returns the last annotated position.
func (f Feature) End() int { return f.end }

// Value returns the feature's descriptive value.
func (f Feature) Value() string { return f.value }

// Score returns the feature score, if any.
func (f Feature) Score() (float64, bool) { return f.score, f.hasScore }

// Covers reports whether position lies within the feature.
func (f Feature) Covers(position int) bool {
	return position >= f.start && position <= f.end
}

// FeatureTable holds the features of an alignment's sequences and resolves
// them by alignment column. It implements structure.AttributeResolver.
type FeatureTable struct {
	alignment *Alignment
	bySeq     map[string][]Feature
	kinds     []string
}

// NewFeatureTable creates a FeatureTable over aln.
func NewFeatureTable(aln *Alignment, features ...Feature) *FeatureTable {
	t := &FeatureTable{alignment: aln, bySeq: make(map[string][]Feature)}
	for _, f := range features {
		t.Add(f)
	}
	return t
}

// Add registers a feature.
func (t *FeatureTable) Add(f Feature) {
	if !t.hasKind(f.kind) {
		t.kinds = append(t.kinds, f.kind)
	}
	t.bySeq[f.sequenceID] = append(t.bySeq[f.sequenceID], f)
}

func (t *FeatureTable) hasKind(kind string) bool {
	for _, k := range t.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Kinds returns the feature types in first-seen order.
func (t *FeatureTable) Kinds() []string {
	out := make([]string, len(t.kinds))
	copy(out, t.kinds)
	return out
}

// Features returns every feature of kind across all sequences.
func (t *FeatureTable) Features(kind string) []Feature {
	var out []Feature
	for _, id := range t.alignment.IDs() {
		for _, f := range t.bySeq[id] {
			if f.kind == kind {
				out = append(out, f)
			}
		}
	}
	return out
}

// FeatureAt returns the first feature of kind covering the residue of
// sequenceID at column.
func (t *FeatureTable) FeatureAt(sequenceID string, column int, kind string) (Feature, bool) {
	pos, ok := t.alignment.SequencePosition(sequenceID, column)
	if !ok {
		return Feature{}, false
	}
	for _, f := range t.bySeq[sequenceID] {
		if f.kind == kind && f.Covers(pos) {
			return f, true
		}
	}
	return Feature{}, false
}

// AttributeValue implements structure.AttributeResolver.
func (t *FeatureTable) AttributeValue(sequenceID string, column int, feature string) (string, bool) {
	f, ok := t.FeatureAt(sequenceID, column, feature)
	if !ok {
		return "", false
	}
	return f.value, true
}

// LoadGFF reads GFF2 features for the sequences of aln. Attributes must use
// GFF2 syntax (Note "Zn binding"); a GFF3 tag=value column fails the load.
// The descriptive value is taken from the Note attribute, then the score,
// then the feature type.
func LoadGFF(r io.Reader, aln *Alignment) (*FeatureTable, error) {
	t := NewFeatureTable(aln)
	sc := featio.NewScanner(gff.NewReader(r))
	for sc.Next() {
		gf, ok := sc.Feat().(*gff.Feature)
		if !ok {
			return nil, fmt.Errorf("load gff: unexpected feature type %T", sc.Feat())
		}
		t.Add(featureFromGFF(gf))
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("load gff: %w", err)
	}
	return t, nil
}

// LoadGFFFile reads a GFF2 file.
func LoadGFFFile(path string, aln *Alignment) (*FeatureTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open features: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadGFF(f, aln)
}

// featureFromGFF converts biogo's zero-based half-open coordinates back to
// 1-based inclusive sequence positions.
func featureFromGFF(gf *gff.Feature) Feature {
	value := strings.Trim(gf.FeatAttributes.Get("Note"), `"`)
	if value == "" && gf.FeatScore != nil {
		value = strconv.FormatFloat(*gf.FeatScore, 'g', -1, 64)
	}
	if value == "" {
		value = gf.Feature
	}
	f := NewFeature(gf.SeqName, gf.Feature, gf.FeatStart+1, gf.FeatEnd, value)
	if gf.FeatScore != nil {
		f = f.WithScore(*gf.FeatScore)
	}
	return f
}
