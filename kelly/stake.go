// Package kelly implements the fractional Kelly staking formula used for
// stake recommendations.
package kelly

import (
	"fmt"
	"math"
)

const (
	// Fraction is the fixed quarter-Kelly discount applied to the raw stake.
	Fraction = 0.25
	// CapFraction limits any recommendation to 1% of bankroll.
	CapFraction = 0.01
	// MinStake is the smallest positive recommendation, also the rounding unit.
	MinStake = 0.5
)

// Stake returns the recommended stake for a bet backed at backOdds when the
// estimated fair odds are fairOdds, given the current bankroll. It never
// errors: any input without a positive edge, or outside the valid domain,
// yields 0.
func Stake(bankroll, backOdds, fairOdds float64) float64 {
	if bankroll <= 0 || backOdds <= 1 || fairOdds <= 1 ||
		math.IsNaN(bankroll) || math.IsNaN(backOdds) || math.IsNaN(fairOdds) {
		return 0
	}

	ev := backOdds/fairOdds - 1
	if ev <= 0 {
		return 0
	}

	denominator := backOdds - 1
	if denominator <= 0 {
		return 0
	}

	stake := bankroll * (ev / denominator) * Fraction

	if cap := bankroll * CapFraction; stake > cap {
		stake = cap
	}

	// Round to the nearest 0.50 unit.
	stake = math.Round(stake*2) / 2

	if stake > 0 && stake < MinStake {
		stake = MinStake
	}
	if stake < 0 {
		stake = 0
	}
	return stake
}

// Explain renders the calculation steps behind a recommendation for display.
func Explain(bankroll, backOdds, fairOdds, recommended float64) string {
	if backOdds <= 1 || fairOdds <= 1 {
		return "Invalid input for calculation explanation."
	}
	ev := backOdds/fairOdds - 1
	rawFraction := ev / (backOdds - 1)
	return fmt.Sprintf(
		"EV = (Back / Fair) - 1 = (%g / %g) - 1 = %.4f\n"+
			"Raw Kelly %% = EV / (Back - 1) = %.4f / %g = %.2f%%\n"+
			"Used Kelly %% = Raw Kelly × %.2f = %.2f%%\n"+
			"Cap %% = %.1f%% of bankroll\n"+
			"Final stake = min(Used Kelly %%, Cap %%) × bankroll, rounded to £%.2f (min £%.2f) = £%.2f",
		backOdds, fairOdds, ev,
		ev, backOdds-1, rawFraction*100,
		Fraction, rawFraction*Fraction*100,
		CapFraction*100,
		MinStake, MinStake, recommended)
}
