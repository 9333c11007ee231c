package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveLabel(t *testing.T) {
	t.Parallel()

	t.Run("without arranger", func(t *testing.T) {
		it := RepertoireItem{Title: "Ave Maria", ComposerLastName: "Bach"}
		assert.Equal(t, "Ave Maria (Bach)", it.DeriveLabel())
	})

	t.Run("with arranger", func(t *testing.T) {
		it := RepertoireItem{Title: "Ave Maria", ComposerLastName: "Bach", ArrangerLastName: "Gounod"}
		assert.Equal(t, "Ave Maria (Bach) / Arr: Gounod", it.DeriveLabel())
	})

	t.Run("whitespace arranger counts as absent", func(t *testing.T) {
		it := RepertoireItem{Title: "Ave Maria", ComposerLastName: "Bach", ArrangerLastName: "  "}
		assert.Equal(t, "Ave Maria (Bach)", it.DeriveLabel())
	})
}

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"7":    "7",
		"7.0":  "7",
		"7,0":  "7",
		" 12 ": "12",
		"A12":  "A12", // opaque, passes through unchanged
		"7.5":  "7.5", // non-integral stays opaque
		"-3":   "-3",  // negative ids are not ours
		"":     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeID(in), "input %q", in)
	}
}

func TestNumericID(t *testing.T) {
	t.Parallel()

	n, ok := NumericID("12,0")
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = NumericID("A12")
	assert.False(t, ok)

	_, ok = NumericID("-3")
	assert.False(t, ok)
}
