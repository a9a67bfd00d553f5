package accumulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool() []Selection {
	return []Selection{
		{Team: "Arsenal", Name: "Saka", BookOdds: 2.0, FairOdds: 1.9},
		{Team: "Arsenal", Name: "Havertz", BookOdds: 3.0, FairOdds: 2.8},
		{Team: "Chelsea", Name: "Palmer", BookOdds: 2.5, FairOdds: 2.3},
		{Team: "Liverpool", Name: "Salah", BookOdds: 1.8, FairOdds: 1.7},
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("Lucky15")
	require.NoError(t, err)
	assert.Equal(t, TypeLucky15, typ)

	_, err = ParseType("yankee")
	assert.Error(t, err)
}

func TestGenerate_Doubles(t *testing.T) {
	combos := Generate(testPool(), TypeDoubles)

	// Doubles allow same-team pairs: C(4,2) = 6
	require.Len(t, combos, 6)

	// Ordered by combined odds, highest first
	for i := 1; i < len(combos); i++ {
		assert.GreaterOrEqual(t, combos[i-1].CombinedOdds, combos[i].CombinedOdds)
	}
	assert.Equal(t, []string{"Havertz", "Palmer"}, combos[0].Names())
	assert.InDelta(t, 7.5, combos[0].CombinedOdds, 1e-9)
}

func TestGenerate_TrixieRequiresDistinctTeams(t *testing.T) {
	combos := Generate(testPool(), TypeTrixie)

	// Only one Arsenal player may appear per trixie: 2 * 1 * 1 = 2
	require.Len(t, combos, 2)
	for _, combo := range combos {
		teams := make(map[string]bool)
		for _, leg := range combo.Legs {
			assert.False(t, teams[leg.Team], "duplicate team in %v", combo.Names())
			teams[leg.Team] = true
		}
	}
}

func TestGenerate_NotEnoughTeams(t *testing.T) {
	// Four selections across three teams cannot form a distinct-team lucky15
	assert.Empty(t, Generate(testPool(), TypeLucky15))
	assert.Empty(t, Generate(testPool()[:1], TypeDoubles))
}

func TestGenerate_CombinedOddsAreProducts(t *testing.T) {
	combos := Generate(testPool(), TypeTrixie)
	for _, combo := range combos {
		expected := 1.0
		for _, leg := range combo.Legs {
			expected *= leg.BookOdds
		}
		assert.InDelta(t, expected, combo.CombinedOdds, 1e-9)
	}
}
