package strategy

import "math/rand"

// Params holds the per-strategy tunables from config. Out-of-range
// values are accepted as-is; config validation is the caller's job.
type Params struct {
	BaseWager  float64
	Multiplier float64

	JackpotChance   float64
	JackpotRaiseMin float64
	JackpotRaiseMax float64

	HighRiskChance   float64
	HighRiskRaiseMin float64
	HighRiskRaiseMax float64
	PulseInterval    int

	RandomizedMode    RandomizedMode
	RandomizedMinMult float64
	RandomizedMaxMult float64
}

// The pulse rounds of high_risk_pulse stake this multiple of the base wager.
const pulseFactor = 5.0

// The dalembert step is this fraction of the base wager.
const dalembertStep = 0.25

// Calculator maps (prior outcome, strategy state) to the next wager
// amount for each variant. Only fibonacci and the streak-aware variants
// mutate State; everything else is a pure function of its inputs plus
// the injected random source.
type Calculator struct {
	params Params
	rng    *rand.Rand
}

// NewCalculator creates a Calculator. The random source is injected so
// tests can run deterministically.
func NewCalculator(p Params, rng *rand.Rand) *Calculator {
	return &Calculator{params: p, rng: rng}
}

// ChanceOverride returns the win-chance percentage a variant forces for
// its rounds, or 0 when the variant plays the configured chance.
func (c *Calculator) ChanceOverride(v Variant) float64 {
	switch v {
	case JackpotHunter:
		return c.params.JackpotChance
	case HighRiskPulse:
		return c.params.HighRiskChance
	default:
		return 0
	}
}

// Next computes the next wager after a resolved round. won is the round
// outcome, round the number of rounds resolved so far, lastLoss the most
// recent lost amount (0 if none). st.LastWager must already hold the
// amount actually charged for the round being resolved.
func (c *Calculator) Next(v Variant, won bool, round int, lastLoss float64, st *State) float64 {
	base := c.params.BaseWager
	if won {
		st.LossStreak = 0
	} else {
		st.LossStreak++
	}

	switch v {
	case Martingale:
		if won {
			return base
		}
		return Round8(st.LastWager * c.params.Multiplier)

	case Fibonacci:
		if won {
			st.FiboSeq = []float64{1, 1}
			st.FiboIndex = 0
			return base
		}
		st.FiboIndex++
		for st.FiboIndex >= len(st.FiboSeq) {
			n := len(st.FiboSeq)
			st.FiboSeq = append(st.FiboSeq, st.FiboSeq[n-1]+st.FiboSeq[n-2])
		}
		return Round8(base * st.FiboSeq[st.FiboIndex])

	case Dalembert:
		step := base * dalembertStep
		if won {
			next := st.LastWager - step
			if next < base {
				next = base
			}
			return Round8(next)
		}
		return Round8(st.LastWager + step)

	case Flat:
		return base

	case JackpotHunter:
		if won {
			return base
		}
		if st.LossStreak <= 1 {
			// First loss since the last win keeps the wager unchanged.
			return Round8(st.LastWager)
		}
		factor := c.uniform(c.params.JackpotRaiseMin, c.params.JackpotRaiseMax)
		return Round8(st.LastWager * factor)

	case HighRiskPulse:
		if won {
			if c.params.PulseInterval > 0 && round > 0 && round%c.params.PulseInterval == 0 {
				return Round8(base * pulseFactor)
			}
			return base
		}
		factor := c.uniform(c.params.HighRiskRaiseMin, c.params.HighRiskRaiseMax)
		return Round8(st.LastWager * factor)

	case Randomized:
		if won {
			return base
		}
		if c.params.RandomizedMode == RandomizedUniform {
			upper := lastLoss
			if upper < base {
				upper = base
			}
			return Round8(c.uniform(base, upper))
		}
		factor := c.uniform(c.params.RandomizedMinMult, c.params.RandomizedMaxMult)
		return Round8(st.LastWager * factor)

	default:
		return base
	}
}

func (c *Calculator) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + c.rng.Float64()*(hi-lo)
}
