// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy_Defaults(t *testing.T) {
	p := NewPolicy()
	assert.Equal(t, Forms{"section", "sections"}, p.Plus(Section))
	assert.Equal(t, Forms{"Chapter", "Chapters"}, p.Star(Chapter))
	assert.False(t, p.PlusChanged(Section))
	assert.False(t, p.StarChanged(Section))
	assert.Equal(t, 2, p.WarningLevel)
}

func TestSetPlus_DerivesStar(t *testing.T) {
	p := NewPolicy()
	require.NoError(t, p.SetPlus(Section, Pair("part", "parts")))

	assert.True(t, p.PlusChanged(Section))
	assert.Equal(t, Forms{"Part", "Parts"}, p.Star(Section))
	// Derivation is not an explicit star override.
	assert.False(t, p.StarChanged(Section))
}

func TestSetPlus_AlreadyCapitalised(t *testing.T) {
	p := NewPolicy()
	require.NoError(t, p.SetPlus(Section, Pair("Part", "Parts")))

	assert.Equal(t, "Part", p.Name(Section, StylePlus, 1))
	assert.Equal(t, "Part", p.Name(Section, StyleStar, 1))
	assert.Equal(t, "Parts", p.Name(Section, StyleStar, 2))
}

func TestSetStar_AfterPlusWins(t *testing.T) {
	p := NewPolicy()
	require.NoError(t, p.SetPlus(Section, Pair("part", "parts")))
	require.NoError(t, p.SetStar(Section, Pair("PART", "PARTS")))

	assert.Equal(t, Forms{"PART", "PARTS"}, p.Star(Section))
	assert.True(t, p.StarChanged(Section))
}

func TestSet_SingularOnlyKeepsPlural(t *testing.T) {
	p := NewPolicy()
	require.NoError(t, p.SetPlus(Chapter, Singular("unit")))
	assert.Equal(t, Forms{"unit", "chapters"}, p.Plus(Chapter))
	assert.Equal(t, Forms{"Unit", "Chapters"}, p.Star(Chapter))
}

func TestSet_SameValueIsNotAChange(t *testing.T) {
	p := NewPolicy()
	require.NoError(t, p.SetPlus(Section, Pair("section", "sections")))
	assert.False(t, p.PlusChanged(Section))
	assert.Equal(t, Forms{"Section", "Sections"}, p.Star(Section))
}

func TestSet_RepeatedOverrideStaysChanged(t *testing.T) {
	p := NewPolicy()
	require.NoError(t, p.SetPlus(Section, Pair("part", "parts")))
	require.NoError(t, p.SetPlus(Section, Pair("part", "parts")))
	assert.True(t, p.PlusChanged(Section))
}

func TestSet_UnknownDivision(t *testing.T) {
	p := NewPolicy()
	assert.ErrorIs(t, p.SetPlus("figure", Singular("fig")), ErrInvalidName)
	assert.ErrorIs(t, p.SetStar("figure", Singular("Fig")), ErrInvalidName)
}

func TestPlusFor_Capitalise(t *testing.T) {
	p := NewPolicy()
	p.Capitalise = true
	assert.Equal(t, Forms{"Section", "Sections"}, p.PlusFor(Section))

	require.NoError(t, p.SetPlus(Section, Pair("part", "parts")))
	assert.Equal(t, Forms{"part", "parts"}, p.PlusFor(Section))
}

func TestName(t *testing.T) {
	p := NewPolicy()
	assert.Equal(t, "section", p.Name(Section, StylePlus, 1))
	assert.Equal(t, "sections", p.Name(Section, StylePlus, 3))
	assert.Equal(t, "Section", p.Name(Section, StyleStar, 1))
	assert.Equal(t, "", p.Name(Section, StyleNone, 1))
}

func TestStyleMacro(t *testing.T) {
	assert.Equal(t, `\cref`, StylePlus.Macro())
	assert.Equal(t, `\Cref`, StyleStar.Macro())
	assert.Equal(t, `\ref`, StyleNone.Macro())
}
