package odds

import (
	"math"
	"math/rand"

	"wolfdice/internal/model"
)

// Mode selects how the bet direction is chosen each round.
type Mode string

const (
	ModeOver  Mode = "over"
	ModeUnder Mode = "under"
	ModeAuto  Mode = "auto"
)

// ForChance converts a target win chance (percentage) into the rule and
// roll threshold to submit. Chance is clamped to [0.01, 99.99]. In auto
// mode the direction is redrawn each call with equal probability; the
// threshold is recomputed so the win probability stays equal to chance.
func ForChance(chance float64, mode Mode, rng *rand.Rand) (model.Rule, float64) {
	ch := clamp(chance, 0.01, 99.99)
	switch mode {
	case ModeOver:
		return model.RuleOver, clamp(100.0-ch, 0.01, 99.99)
	case ModeUnder:
		return model.RuleUnder, ch
	default:
		if rng.Intn(2) == 1 {
			return model.RuleUnder, ch
		}
		return model.RuleOver, clamp(100.0-ch, 0.01, 99.99)
	}
}

// WinChance returns the win probability (percentage) implied by a
// rule/threshold pair.
func WinChance(rule model.Rule, threshold float64) float64 {
	if rule == model.RuleUnder {
		return math.Max(threshold, 0.01)
	}
	return math.Max(100.0-threshold, 0.01)
}

// PayoutMultiplier returns the dice payout for a rule/threshold pair
// (99 / win chance, rounded to 4 decimals).
func PayoutMultiplier(rule model.Rule, threshold float64) float64 {
	m := 99.0 / WinChance(rule, threshold)
	return math.Round(m*1e4) / 1e4
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
