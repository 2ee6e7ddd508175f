package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHiddenColumns(t *testing.T) {
	h, err := ParseHiddenColumns([]string{"3-5", "9"})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{2, 4}, {8, 8}}, h.Regions())
	assert.False(t, h.IsHidden(1))
	assert.True(t, h.IsHidden(2))
	assert.True(t, h.IsHidden(4))
	assert.False(t, h.IsHidden(5))
	assert.True(t, h.IsHidden(8))
}

func TestParseHiddenColumns_Invalid(t *testing.T) {
	for _, text := range []string{"", "x", "5-3", "0-2", "2-y"} {
		_, err := ParseHiddenColumns([]string{text})
		assert.ErrorIs(t, err, ErrInvalidColumnRange, text)
	}
}

func TestHiddenColumns_HideMerges(t *testing.T) {
	h := NewHiddenColumns()
	h.Hide(10, 12)
	h.Hide(2, 3)
	h.Hide(4, 5)
	h.Hide(11, 20)

	assert.Equal(t, [][2]int{{2, 5}, {10, 20}}, h.Regions())
}

func TestHiddenColumns_AdjustForHidden(t *testing.T) {
	h := NewHiddenColumns()
	h.Hide(2, 4)

	assert.Equal(t, 0, h.AdjustForHidden(0))
	assert.Equal(t, 1, h.AdjustForHidden(1))
	assert.Equal(t, 2, h.AdjustForHidden(5))
	assert.Equal(t, 3, h.AdjustForHidden(6))
}
