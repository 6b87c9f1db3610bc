package genedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModes(t *testing.T) {
	tests := []struct {
		input string
		want  []Mode
	}{
		{"Monoallelic", []Mode{ModeDominant}},
		{"Biallelic", []Mode{ModeRecessive}},
		{"Both", []Mode{ModeDominant, ModeRecessive}},
		{"Hemizygous", []Mode{ModeXRecessive}},
		{"X-linked dominant", []Mode{ModeXDominant}},
		{"X-linked over-dominance", []Mode{ModeXDominant}},
		{"Mosaic", []Mode{ModeMosaic}},
		{"monoallelic", []Mode{ModeDominant}},
		{"Monoallelic,Biallelic", []Mode{ModeDominant, ModeRecessive}},
		{"Monoallelic, Biallelic", []Mode{ModeDominant, ModeRecessive}},
		{"autosomal dominant", []Mode{ModeDominant}},
		{"autosomal recessive", []Mode{ModeRecessive}},
		{"x-linked recessive", []Mode{ModeXRecessive}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseModes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModes_Errors(t *testing.T) {
	for _, input := range []string{"", "Digenic", "Monoallelic,Bogus", ","} {
		_, err := ParseModes(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMode_Predicates(t *testing.T) {
	assert.True(t, ModeDominant.IsDominant())
	assert.True(t, ModeXDominant.IsDominant())
	assert.True(t, ModeMosaic.IsDominant())
	assert.False(t, ModeRecessive.IsDominant())

	assert.True(t, ModeRecessive.IsRecessive())
	assert.True(t, ModeXRecessive.IsRecessive())
	assert.False(t, ModeDominant.IsRecessive())

	assert.True(t, ModeXDominant.IsXLinked())
	assert.True(t, ModeXRecessive.IsXLinked())
	assert.False(t, ModeDominant.IsXLinked())
	assert.False(t, ModeMosaic.IsXLinked())
}

func TestEntry_HasMode(t *testing.T) {
	e := Entry{Symbol: "SCN2A", Modes: []Mode{ModeDominant, ModeRecessive}}
	assert.True(t, e.HasMode(ModeDominant))
	assert.True(t, e.HasMode(ModeRecessive))
	assert.False(t, e.HasMode(ModeXRecessive))
}
