package strategy

import (
	"fmt"
	"math"
)

// Variant identifies a staking strategy.
type Variant string

const (
	Martingale    Variant = "martingale"
	Fibonacci     Variant = "fibonacci"
	Dalembert     Variant = "dalembert"
	Flat          Variant = "flat"
	JackpotHunter Variant = "jackpot_hunter"
	HighRiskPulse Variant = "high_risk_pulse"
	Randomized    Variant = "randomized"
)

// Variants lists every supported staking strategy.
var Variants = []Variant{Martingale, Fibonacci, Dalembert, Flat, JackpotHunter, HighRiskPulse, Randomized}

// ParseVariant validates a strategy name from config.
func ParseVariant(name string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", name)
}

// RandomizedMode selects how the randomized variant sizes its loss wagers.
type RandomizedMode string

const (
	RandomizedMultiplier RandomizedMode = "multiplier"
	RandomizedUniform    RandomizedMode = "uniform"
)

// State is the small per-strategy memory. It is recreated at session
// start and reset whenever the active strategy changes or resumes from
// a win.
type State struct {
	// Fibonacci sequence of multipliers over the base wager, and the
	// current position within it. Fib(1)=Fib(2)=1.
	FiboSeq   []float64
	FiboIndex int

	// Consecutive losses since the last win, used by variants that treat
	// the first loss differently from later ones.
	LossStreak int

	// Amount the house actually charged for the last wager. May differ
	// slightly from the requested amount due to server-side rounding.
	LastWager float64
}

// NewState returns a fresh State seeded with the base wager.
func NewState(base float64) *State {
	s := &State{}
	s.Reset(base)
	return s
}

// Reset restores initial values.
func (s *State) Reset(base float64) {
	s.FiboSeq = []float64{1, 1}
	s.FiboIndex = 0
	s.LossStreak = 0
	s.LastWager = base
}

// Round8 rounds an amount to the wager unit's minimum denomination
// (8 fractional digits).
func Round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
