// Package accumulator generates multi-leg bet combinations (doubles,
// trixies and friends) from a pool of selections grouped by team.
package accumulator

import (
	"fmt"
	"sort"
	"strings"
)

// Selection is a single leg available for combination
type Selection struct {
	Team     string
	Name     string
	BookOdds float64
	FairOdds float64
}

// Type identifies an accumulator shape
type Type string

const (
	TypeDoubles  Type = "doubles"
	TypeTrixie   Type = "trixie"
	TypeLucky15  Type = "lucky15"
	TypeCanadian Type = "canadian"
	TypeHeinz    Type = "heinz"
)

// Types lists every supported accumulator type
var Types = []Type{TypeDoubles, TypeTrixie, TypeLucky15, TypeCanadian, TypeHeinz}

// ParseType matches a type name case-insensitively
func ParseType(name string) (Type, error) {
	for _, t := range Types {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown combination type %q", name)
}

// legs returns the combination size and whether every leg must come from a
// different team. Doubles alone allow two legs from the same team.
func (t Type) legs() (int, bool) {
	switch t {
	case TypeDoubles:
		return 2, false
	case TypeTrixie:
		return 3, true
	case TypeLucky15:
		return 4, true
	case TypeCanadian:
		return 5, true
	case TypeHeinz:
		return 6, true
	default:
		return 0, false
	}
}

// Combination is one generated multi-leg bet
type Combination struct {
	Legs         []Selection
	CombinedOdds float64
}

// Names returns the leg names in order
func (c Combination) Names() []string {
	names := make([]string, len(c.Legs))
	for i, leg := range c.Legs {
		names[i] = leg.Name
	}
	return names
}

// Generate produces every combination of the given type from the selection
// pool, ordered by combined book odds, highest first. The result is empty
// when the pool cannot satisfy the type's shape.
func Generate(selections []Selection, typ Type) []Combination {
	size, distinctTeams := typ.legs()
	if size == 0 || len(selections) < size {
		return nil
	}

	if distinctTeams && teamCount(selections) < size {
		return nil
	}

	var result []Combination
	combo := make([]Selection, 0, size)

	var backtrack func(start int)
	backtrack = func(start int) {
		if len(combo) == size {
			if distinctTeams && !allDistinctTeams(combo) {
				return
			}
			legs := make([]Selection, size)
			copy(legs, combo)
			result = append(result, Combination{
				Legs:         legs,
				CombinedOdds: combinedOdds(legs),
			})
			return
		}
		for i := start; i < len(selections); i++ {
			combo = append(combo, selections[i])
			backtrack(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	backtrack(0)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CombinedOdds > result[j].CombinedOdds
	})

	return result
}

func combinedOdds(legs []Selection) float64 {
	odds := 1.0
	for _, leg := range legs {
		odds *= leg.BookOdds
	}
	return odds
}

func allDistinctTeams(legs []Selection) bool {
	seen := make(map[string]bool, len(legs))
	for _, leg := range legs {
		if seen[leg.Team] {
			return false
		}
		seen[leg.Team] = true
	}
	return true
}

func teamCount(selections []Selection) int {
	teams := make(map[string]bool)
	for _, s := range selections {
		teams[s.Team] = true
	}
	return len(teams)
}
