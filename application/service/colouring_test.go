package service

import (
	"context"
	"strings"
	"testing"

	"github.com/helixml/molsync/domain/colour"
	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/infrastructure/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlignment map[string]string

func (f fakeAlignment) Width() int {
	w := 0
	for _, row := range f {
		w = max(w, len(row))
	}
	return w
}

func (f fakeAlignment) Residue(id string, column int) (byte, bool) {
	row, ok := f[id]
	if !ok || column < 0 || column >= len(row) {
		return 0, false
	}
	return row[column], true
}

type fakeMapper map[string][]structure.Mapping

func (f fakeMapper) ForFile(file string) []structure.Mapping { return f[file] }

type fakeHidden map[int]bool

func (f fakeHidden) IsHidden(column int) bool { return f[column] }

func (f fakeHidden) AdjustForHidden(column int) int { return column }

// sequenceColours colours every residue of a sequence the same.
type sequenceColours map[string]colour.RGB

func (s sequenceColours) ColourFor(id string, _ int) (colour.RGB, bool) {
	c, ok := s[id]
	return c, ok
}

// columnColours colours by column; columns absent from the map have no colour.
type columnColours map[int]colour.RGB

func (c columnColours) ColourFor(_ string, column int) (colour.RGB, bool) {
	rgb, ok := c[column]
	return rgb, ok
}

type fakeAttributes map[string]map[int]string

func (f fakeAttributes) AttributeValue(_ string, column int, feature string) (string, bool) {
	v, ok := f[feature][column]
	return v, ok
}

func oneToOne(sequenceID, chain string, first, length int) structure.Mapping {
	residues := make(map[int]int, length)
	for col := 0; col < length; col++ {
		residues[col] = first + col
	}
	return structure.NewMapping(sequenceID, chain, residues)
}

func twoChainView(hidden structure.HiddenColumns) View {
	aln := fakeAlignment{"seqA": "MKVLAAGIVE", "seqB": "MKVLSAGIVE"}
	mapper := fakeMapper{"1abc.pdb": {
		oneToOne("seqA", "A", 21, 10),
		oneToOne("seqB", "B", 21, 10),
	}}
	return NewView(aln, mapper, hidden)
}

func TestColourBySequence_HiddenColumnsUseHiddenColour(t *testing.T) {
	view := twoChainView(fakeHidden{2: true, 3: true, 4: true})
	resolver := sequenceColours{"seqA": colour.Red, "seqB": colour.Blue}

	set := NewColouring().ColourBySequence(context.Background(), view,
		[]structure.Structure{structure.NewStructure("1abc.pdb", 1)}, resolver)

	require.Len(t, set.Chunks(), 1)
	assert.Equal(t,
		"color #ff0000 #1:21-22.A,26-30.A; "+
			"color #808080 #1:23-25.A,23-25.B; "+
			"color #0000ff #1:21-22.B,26-30.B",
		set.Chunks()[0])
	assert.Equal(t, []string{"1abc.pdb"}, set.Files())
}

func TestColourBySequence_JmolDialect(t *testing.T) {
	view := twoChainView(fakeHidden{2: true, 3: true, 4: true})
	resolver := sequenceColours{"seqA": colour.Red, "seqB": colour.Blue}

	set := NewColouring(WithDialect(dialect.Jmol{})).ColourBySequence(context.Background(), view,
		[]structure.Structure{structure.NewStructure("1abc.pdb", 1)}, resolver)

	require.Len(t, set.Chunks(), 1)
	assert.Equal(t,
		"select 21-22:A/1.1|26-30:A/1.1;color[255,0,0];"+
			"select 23-25:A/1.1|23-25:B/1.1;color[128,128,128];"+
			"select 21-22:B/1.1|26-30:B/1.1;color[0,0,255]",
		set.Chunks()[0])
}

func TestColourBySequence_ComputedColourIgnoresHidden(t *testing.T) {
	view := twoChainView(fakeHidden{2: true})
	resolver := sequenceColours{"seqA": colour.Red, "seqB": colour.Blue}

	set := NewColouring(WithHiddenColumnPolicy(ComputedColour)).ColourBySequence(context.Background(), view,
		[]structure.Structure{structure.NewStructure("1abc.pdb", 1)}, resolver)

	assert.Equal(t, []string{"color #ff0000 #1:21-30.A; color #0000ff #1:21-30.B"}, set.Chunks())
}

func TestColourBySequence_CustomHiddenColour(t *testing.T) {
	view := twoChainView(fakeHidden{0: true})
	resolver := sequenceColours{"seqA": colour.Red}

	set := NewColouring(WithHiddenColour(colour.Black)).ColourBySequence(context.Background(), view,
		[]structure.Structure{structure.NewStructure("1abc.pdb", 1)}, resolver)

	assert.Equal(t, []string{"color #000000 #1:21.A,21.B; color #ff0000 #1:22-30.A"}, set.Chunks())
}

func TestColourBySequence_SkipsGapsAndUncoloured(t *testing.T) {
	aln := fakeAlignment{"s": "AC-DEF"}
	mapper := fakeMapper{"x.pdb": {structure.NewMapping("s", "A", map[int]int{0: 1, 1: 2, 2: 99, 3: 3, 4: 4, 5: 5})}}
	resolver := columnColours{0: colour.Red, 1: colour.Red, 2: colour.Blue, 3: colour.Red, 5: colour.Red}

	set := NewColouring().ColourBySequence(context.Background(), NewView(aln, mapper, nil),
		[]structure.Structure{structure.NewStructure("x.pdb", 0)}, resolver)

	assert.Equal(t, []string{"color #ff0000 #0:1-3.A,5.A"}, set.Chunks())
}

func TestColourBySequence_MissingMappingSkipped(t *testing.T) {
	view := twoChainView(nil)
	resolver := sequenceColours{"seqA": colour.Red}

	set := NewColouring().ColourBySequence(context.Background(), view,
		[]structure.Structure{
			structure.NewStructure("unmapped.pdb", 0),
			structure.NewStructure("1abc.pdb", 1),
		}, resolver)

	assert.Equal(t, []string{"1abc.pdb"}, set.Files())
	assert.Equal(t, []string{"color #ff0000 #1:21-30.A"}, set.Chunks())
}

func TestColourBySequence_NothingMapped(t *testing.T) {
	set := NewColouring().ColourBySequence(context.Background(), twoChainView(nil),
		[]structure.Structure{structure.NewStructure("none.pdb", 0)}, sequenceColours{})

	assert.True(t, set.IsEmpty())
	assert.Empty(t, set.Files())
}

func TestColourBySequence_FirstColourWins(t *testing.T) {
	aln := fakeAlignment{"s1": "AAAA", "s2": "AAAA"}
	mapper := fakeMapper{"x.pdb": {
		oneToOne("s1", "A", 1, 2),
		oneToOne("s2", "A", 1, 4),
	}}
	resolver := sequenceColours{"s1": colour.Red, "s2": colour.Blue}

	set := NewColouring().ColourBySequence(context.Background(), NewView(aln, mapper, nil),
		[]structure.Structure{structure.NewStructure("x.pdb", 1)}, resolver)

	assert.Equal(t, []string{"color #ff0000 #1:1-2.A; color #0000ff #1:3-4.A"}, set.Chunks())
}

func TestColourBySequence_ConsecutiveOnly(t *testing.T) {
	aln := fakeAlignment{"s": "AAAA"}
	mapper := fakeMapper{"x.pdb": {structure.NewMapping("s", "A", map[int]int{0: 5, 1: 5, 2: 6, 3: 5})}}
	resolver := columnColours{0: colour.Red, 1: colour.Blue, 2: colour.Red, 3: colour.Yellow}

	consecutive := NewColouring(WithDuplicateResiduePolicy(ConsecutiveOnly)).ColourBySequence(
		context.Background(), NewView(aln, mapper, nil),
		[]structure.Structure{structure.NewStructure("x.pdb", 1)}, resolver)
	first := NewColouring().ColourBySequence(
		context.Background(), NewView(aln, mapper, nil),
		[]structure.Structure{structure.NewStructure("x.pdb", 1)}, resolver)

	assert.Equal(t, []string{"color #ff0000 #1:5-6.A; color #ffff00 #1:5.A"}, consecutive.Chunks())
	assert.Equal(t, []string{"color #ff0000 #1:5-6.A"}, first.Chunks())
}

func TestColourBySequence_UncolouredResidueStaysAvailable(t *testing.T) {
	aln := fakeAlignment{"s1": "AA", "s2": "AA"}
	mapper := fakeMapper{"x.pdb": {oneToOne("s1", "A", 1, 2), oneToOne("s2", "A", 1, 2)}}
	resolver := sequenceColours{"s2": colour.Blue}

	set := NewColouring().ColourBySequence(context.Background(), NewView(aln, mapper, nil),
		[]structure.Structure{structure.NewStructure("x.pdb", 1)}, resolver)

	assert.Equal(t, []string{"color #0000ff #1:1-2.A"}, set.Chunks())
}

func TestColourBySequence_MultipleStructures(t *testing.T) {
	aln := fakeAlignment{"s": "AAA"}
	mapper := fakeMapper{
		"a.pdb": {oneToOne("s", "A", 1, 3)},
		"b.pdb": {oneToOne("s", "", 10, 3)},
	}
	resolver := sequenceColours{"s": colour.Red}

	set := NewColouring().ColourBySequence(context.Background(), NewView(aln, mapper, nil),
		[]structure.Structure{structure.NewStructure("b.pdb", 2), structure.NewStructure("a.pdb", 1)}, resolver)

	assert.Equal(t, []string{"b.pdb", "a.pdb"}, set.Files())
	assert.Equal(t, []string{"color #ff0000 #1:1-3.A|#2:10-12."}, set.Chunks())
}

func TestColourBySequence_ChunkedOutputRejoins(t *testing.T) {
	aln := fakeAlignment{"s": strings.Repeat("A", 40)}
	mapper := fakeMapper{"x.pdb": {oneToOne("s", "A", 1, 40)}}
	resolver := make(columnColours)
	for col := 0; col < 40; col++ {
		resolver[col] = colour.New(uint8(col), 0, 0)
	}
	structures := []structure.Structure{structure.NewStructure("x.pdb", 1)}
	view := NewView(aln, mapper, nil)

	whole := NewColouring(WithMaxChunkLength(0)).ColourBySequence(context.Background(), view, structures, resolver)
	chunked := NewColouring(WithMaxChunkLength(100)).ColourBySequence(context.Background(), view, structures, resolver)

	require.Len(t, whole.Chunks(), 1)
	assert.Greater(t, len(chunked.Chunks()), 1)
	assert.Equal(t, whole.Chunks()[0], strings.Join(chunked.Chunks(), "; "))
	for _, c := range chunked.Chunks() {
		assert.LessOrEqual(t, len(c), 100)
	}
}

func TestColourBySequence_Deterministic(t *testing.T) {
	view := twoChainView(fakeHidden{5: true})
	resolver := sequenceColours{"seqA": colour.Red, "seqB": colour.Blue}
	structures := []structure.Structure{structure.NewStructure("1abc.pdb", 1)}
	c := NewColouring()

	first := c.ColourBySequence(context.Background(), view, structures, resolver)
	for i := 0; i < 20; i++ {
		again := c.ColourBySequence(context.Background(), view, structures, resolver)
		require.Equal(t, first.Chunks(), again.Chunks())
	}
}

func TestSetAttributes(t *testing.T) {
	aln := fakeAlignment{"s": "AAAAAA"}
	mapper := fakeMapper{"x.pdb": {oneToOne("s", "A", 10, 6)}}
	resolver := fakeAttributes{
		"Pfam":  {0: "PF1", 1: "PF1", 3: "PF2"},
		"metal": {5: "Zn'2"},
	}
	hidden := fakeHidden{1: true}

	set := NewColouring().SetAttributes(context.Background(), NewView(aln, mapper, hidden),
		[]structure.Structure{structure.NewStructure("x.pdb", 1)}, resolver, []string{"Pfam", "metal", "absent"})

	assert.Equal(t, []string{
		"setattr r jv_Pfam 'PF1' #1:10-11.A; " +
			"setattr r jv_Pfam 'PF2' #1:13.A; " +
			"setattr r jv_metal 'Zn&#39;2' #1:15.A",
	}, set.Chunks())
	assert.Equal(t, []string{"x.pdb"}, set.Files())
}

func TestSetAttributes_ChimeraX(t *testing.T) {
	aln := fakeAlignment{"s": "AA"}
	mapper := fakeMapper{"x.pdb": {oneToOne("s", "B", 1, 2)}}
	resolver := fakeAttributes{"helix color": {0: "h", 1: "h"}}

	set := NewColouring(WithDialect(dialect.ChimeraX{})).SetAttributes(context.Background(), NewView(aln, mapper, nil),
		[]structure.Structure{structure.NewStructure("x.pdb", 1)}, resolver, []string{"helix color"})

	assert.Equal(t, []string{"setattr #1/B:1-2 res jv_helix_color_ 'h' create true"}, set.Chunks())
}

func TestColourByChainAndCharge(t *testing.T) {
	structures := []structure.Structure{structure.NewStructure("a.pdb", 1), structure.NewStructure("b.pdb", 2)}
	c := NewColouring(WithDialect(dialect.Jmol{}))

	chain := c.ColourByChain(structures)
	assert.Equal(t, []string{"select *;color chain"}, chain.Chunks())
	assert.Equal(t, []string{"a.pdb", "b.pdb"}, chain.Files())

	charge := c.ColourByCharge(structures)
	require.Len(t, charge.Chunks(), 1)
	assert.True(t, strings.HasPrefix(charge.Chunks()[0], "select *;color white;select ASP,GLU;color red"))
	assert.Equal(t, "jmol", c.Dialect().Name())
}

func TestParsePolicies(t *testing.T) {
	d, err := ParseDuplicateResiduePolicy("consecutive")
	require.NoError(t, err)
	assert.Equal(t, ConsecutiveOnly, d)
	assert.Equal(t, "consecutive", d.String())

	d, err = ParseDuplicateResiduePolicy("")
	require.NoError(t, err)
	assert.Equal(t, FirstColourWins, d)

	_, err = ParseDuplicateResiduePolicy("last")
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	h, err := ParseHiddenColumnPolicy("Computed")
	require.NoError(t, err)
	assert.Equal(t, ComputedColour, h)
	assert.Equal(t, "override", OverrideHidden.String())

	_, err = ParseHiddenColumnPolicy("skip")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
