package kelly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStake_InvalidInputs(t *testing.T) {
	tests := []struct {
		name     string
		bankroll float64
		backOdds float64
		fairOdds float64
	}{
		{"zero bankroll", 0, 2.0, 1.8},
		{"negative bankroll", -100, 2.0, 1.8},
		{"back odds at 1", 3000, 1.0, 1.8},
		{"back odds below 1", 3000, 0.5, 1.8},
		{"fair odds at 1", 3000, 2.0, 1.0},
		{"NaN bankroll", math.NaN(), 2.0, 1.8},
		{"NaN odds", 3000, math.NaN(), 1.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, Stake(tt.bankroll, tt.backOdds, tt.fairOdds))
		})
	}
}

func TestStake_NoEdge(t *testing.T) {
	// Back odds at or below fair odds means zero or negative EV.
	assert.Zero(t, Stake(3000, 2.0, 2.0))
	assert.Zero(t, Stake(3000, 1.8, 2.0))
}

func TestStake_QuarterKellyRounding(t *testing.T) {
	// EV = 10/9.4 - 1 ≈ 0.0638, raw fraction ≈ 0.0071,
	// 3000 × 0.0071 × 0.25 ≈ 5.32 → rounds to 5.50.
	assert.Equal(t, 5.5, Stake(3000, 10, 9.4))
}

func TestStake_CappedAtOnePercent(t *testing.T) {
	// EV = 2/1.8 - 1 ≈ 0.111, raw stake ≈ 27.78, cap = 10.
	assert.Equal(t, 10.0, Stake(1000, 2.0, 1.8))
}

func TestStake_RoundsToZeroOnTinyEdge(t *testing.T) {
	// Quarter-Kelly stake ≈ 0.13, rounds down to 0 and stays 0.
	assert.Zero(t, Stake(100, 2.0, 1.99))
}

func TestStake_BoundsProperty(t *testing.T) {
	bankrolls := []float64{50, 500, 3000, 100000}
	odds := []struct{ back, fair float64 }{
		{2.0, 1.8}, {10, 9.4}, {1.5, 1.2}, {21, 20}, {3.2, 2.9},
	}

	for _, bankroll := range bankrolls {
		for _, o := range odds {
			stake := Stake(bankroll, o.back, o.fair)
			if stake == 0 {
				continue
			}
			assert.GreaterOrEqual(t, stake, MinStake)
			// Cap can only be exceeded by the 0.50 floor or rounding step.
			assert.LessOrEqual(t, stake, math.Max(bankroll*CapFraction+MinStake/2, MinStake))
			assert.Equal(t, math.Round(stake*2)/2, stake, "stake must land on a 0.50 grid")
		}
	}
}

func TestExplain(t *testing.T) {
	out := Explain(3000, 10, 9.4, 5.5)
	assert.Contains(t, out, "EV = (Back / Fair) - 1")
	assert.Contains(t, out, "£5.50")

	assert.Equal(t, "Invalid input for calculation explanation.", Explain(3000, 1.0, 9.4, 0))
}
