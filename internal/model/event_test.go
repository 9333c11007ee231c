package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetlistFilename(t *testing.T) {
	t.Parallel()

	// No separators between fields; existing archives depend on this shape.
	got := SetlistFilename("Tutti", "01.06.2025", "Springfield")
	assert.Equal(t, "Tutti01.06.2025SpringfieldSetlist.xlsx", got)
}

func TestSongIDsRoundTrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4,1,9", JoinSongIDs([]string{"4", "1", "9"}))
	assert.Equal(t, []string{"4", "1", "9"}, SplitSongIDs("4,1,9"))
	assert.Equal(t, []string{"4", "9"}, SplitSongIDs(" 4 ,, 9 "))
	assert.Nil(t, SplitSongIDs(""))
	assert.Nil(t, SplitSongIDs("  "))
}

func TestValidEnsemble(t *testing.T) {
	t.Parallel()

	for _, e := range Ensembles {
		assert.True(t, ValidEnsemble(e))
	}
	assert.False(t, ValidEnsemble("Trio"))
	assert.False(t, ValidEnsemble(""))
	assert.False(t, ValidEnsemble("tutti")) // enum is case-sensitive
}
