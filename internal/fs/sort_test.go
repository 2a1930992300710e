package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortModeString(t *testing.T) {
	assert.Equal(t, "name", SortByName.String())
	assert.Equal(t, "size", SortBySize.String())
	assert.Equal(t, "modified", SortByModified.String())
	assert.Equal(t, "type", SortByType.String())
	assert.Equal(t, "name", SortMode(99).String())
}

func TestSortModeNextWraps(t *testing.T) {
	assert.Equal(t, SortBySize, SortByName.Next())
	assert.Equal(t, SortByModified, SortBySize.Next())
	assert.Equal(t, SortByType, SortByModified.Next())
	assert.Equal(t, SortByName, SortByType.Next())
}

func TestParseSortMode(t *testing.T) {
	mode, ok := ParseSortMode("size")
	assert.True(t, ok)
	assert.Equal(t, SortBySize, mode)

	mode, ok = ParseSortMode("MODIFIED")
	assert.True(t, ok)
	assert.Equal(t, SortByModified, mode)

	_, ok = ParseSortMode("bogus")
	assert.False(t, ok)
}
