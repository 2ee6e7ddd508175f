package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapping_ResidueFor(t *testing.T) {
	m := NewMapping("seqA", "A", map[int]int{0: 21, 1: 22, 4: 23})

	r, ok := m.ResidueFor(4)
	assert.True(t, ok)
	assert.Equal(t, 23, r)

	_, ok = m.ResidueFor(2)
	assert.False(t, ok)

	assert.Equal(t, "seqA", m.SequenceID())
	assert.Equal(t, "A", m.Chain())
}

func TestIsGap(t *testing.T) {
	for _, c := range []byte{'-', '.', ' '} {
		assert.True(t, IsGap(c), string(c))
	}
	assert.False(t, IsGap('A'))
}

func TestCommandSet_Digest(t *testing.T) {
	a := NewCommandSet([]string{"1abc.pdb"}, []string{"color #ff0000 #1:1.A"})
	b := NewCommandSet([]string{"other.pdb"}, []string{"color #ff0000 #1:1.A"})
	c := NewCommandSet([]string{"1abc.pdb"}, []string{"color #ff0000 #1:2.A"})

	assert.Equal(t, a.Digest(), b.Digest())
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a.Digest(), c.Digest())
	assert.False(t, a.Equal(c))
}

func TestCommandSet_DigestSeparatesChunks(t *testing.T) {
	a := NewCommandSet(nil, []string{"ab", "c"})
	b := NewCommandSet(nil, []string{"a", "bc"})

	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestCommandSet_IsEmpty(t *testing.T) {
	assert.True(t, NewCommandSet(nil, nil).IsEmpty())
	assert.False(t, NewCommandSet(nil, []string{"x"}).IsEmpty())
}

func TestNewHistory(t *testing.T) {
	set := NewCommandSet([]string{"f"}, []string{"x"})
	h := NewHistory("viewer-1", set)

	assert.Zero(t, h.ID())
	assert.Equal(t, "viewer-1", h.Viewer())
	assert.Equal(t, set.Digest(), h.Digest())
	assert.False(t, h.UpdatedAt().IsZero())
}

func TestNoHiddenColumns(t *testing.T) {
	var h HiddenColumns = NoHiddenColumns{}

	assert.False(t, h.IsHidden(3))
	assert.Equal(t, 3, h.AdjustForHidden(3))
}
