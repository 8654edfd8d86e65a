package strategy

import (
	"math/rand"
	"testing"
)

func newTestCalc(p Params, seed int64) *Calculator {
	if p.BaseWager == 0 {
		p.BaseWager = 100
	}
	if p.Multiplier == 0 {
		p.Multiplier = 2.0
	}
	return NewCalculator(p, rand.New(rand.NewSource(seed)))
}

// Replays a win/loss sequence through Next the way the controller does,
// returning every wager that would have been submitted.
func replay(c *Calculator, v Variant, base float64, outcomes []bool) []float64 {
	st := NewState(base)
	wager := base
	var placed []float64
	var lastLoss float64
	for i, won := range outcomes {
		placed = append(placed, wager)
		st.LastWager = wager
		if !won {
			lastLoss = wager
		}
		wager = c.Next(v, won, i+1, lastLoss, st)
	}
	return placed
}

func TestMartingale_Scenario(t *testing.T) {
	c := newTestCalc(Params{}, 1)
	got := replay(c, Martingale, 100, []bool{false, false, true, true})
	want := []float64{100, 200, 400, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wager %d: got %.0f, want %.0f", i, got[i], want[i])
		}
	}

	st := NewState(100)
	st.LastWager = 400
	if next := c.Next(Martingale, true, 5, 400, st); next != 100 {
		t.Errorf("martingale win should reset to base, got %.0f", next)
	}
}

func TestFibonacci_Scenario(t *testing.T) {
	c := newTestCalc(Params{}, 1)
	got := replay(c, Fibonacci, 100, []bool{false, false, false, true})
	want := []float64{100, 100, 200, 300}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wager %d: got %.0f, want %.0f", i, got[i], want[i])
		}
	}

	// After the win the sequence re-seeds and the next wager is the base.
	st := NewState(100)
	if next := c.Next(Fibonacci, true, 4, 300, st); next != 100 {
		t.Errorf("fibonacci win should reset to base, got %.0f", next)
	}
	if st.FiboIndex != 0 || len(st.FiboSeq) != 2 {
		t.Errorf("fibonacci state not reset: index=%d seq=%v", st.FiboIndex, st.FiboSeq)
	}
}

func TestFibonacci_UnbrokenStreakFollowsSequence(t *testing.T) {
	c := newTestCalc(Params{}, 1)
	outcomes := []bool{false, false, false, false, false, false, false}
	got := replay(c, Fibonacci, 100, outcomes)
	want := []float64{100, 100, 200, 300, 500, 800, 1300}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("streak wager %d: got %.0f, want %.0f", i, got[i], want[i])
		}
	}
}

func TestFlat_ConstantRegardlessOfHistory(t *testing.T) {
	c := newTestCalc(Params{}, 1)
	for _, w := range replay(c, Flat, 100, []bool{false, true, false, false, true}) {
		if w != 100 {
			t.Fatalf("flat wager drifted to %.0f", w)
		}
	}
}

func TestDalembert_StepUpDownFloorsAtBase(t *testing.T) {
	c := newTestCalc(Params{}, 1)
	got := replay(c, Dalembert, 100, []bool{false, false, true, true, true})
	want := []float64{100, 125, 150, 125, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wager %d: got %.0f, want %.0f", i, got[i], want[i])
		}
	}
}

func TestJackpotHunter_FirstLossKeepsWager(t *testing.T) {
	c := newTestCalc(Params{JackpotRaiseMin: 1.02, JackpotRaiseMax: 1.05}, 7)

	st := NewState(100)
	st.LastWager = 100
	next := c.Next(JackpotHunter, false, 1, 100, st)
	if next != 100 {
		t.Errorf("first loss should keep the wager, got %.2f", next)
	}

	// Second and later losses raise within the configured range.
	st.LastWager = next
	for i := 0; i < 50; i++ {
		raised := c.Next(JackpotHunter, false, i+2, next, st)
		lo, hi := next*1.02, next*1.05
		if raised < lo || raised > hi {
			t.Fatalf("raise %.4f outside [%.4f, %.4f]", raised, lo, hi)
		}
		next = raised
		st.LastWager = next
	}

	if got := c.Next(JackpotHunter, true, 60, next, st); got != 100 {
		t.Errorf("win should reset to base, got %.2f", got)
	}
	if st.LossStreak != 0 {
		t.Errorf("win should reset streak, got %d", st.LossStreak)
	}
}

func TestHighRiskPulse_PulseAndRaise(t *testing.T) {
	c := newTestCalc(Params{HighRiskRaiseMin: 1.10, HighRiskRaiseMax: 1.20, PulseInterval: 20}, 9)

	st := NewState(100)
	st.LastWager = 100
	if got := c.Next(HighRiskPulse, true, 19, 0, st); got != 100 {
		t.Errorf("off-interval win should stake base, got %.2f", got)
	}
	if got := c.Next(HighRiskPulse, true, 20, 0, st); got != 500 {
		t.Errorf("pulse round should stake 5x base, got %.2f", got)
	}

	st.LastWager = 100
	for i := 0; i < 50; i++ {
		got := c.Next(HighRiskPulse, false, i+1, 100, st)
		if got < 110 || got > 120 {
			t.Fatalf("loss raise %.4f outside [110, 120]", got)
		}
		st.LastWager = 100
	}
}

func TestRandomized_UniformModeBounds(t *testing.T) {
	c := newTestCalc(Params{RandomizedMode: RandomizedUniform}, 11)
	st := NewState(100)
	st.LastWager = 400
	for i := 0; i < 200; i++ {
		got := c.Next(Randomized, false, i+1, 400, st)
		if got < 100 || got > 400 {
			t.Fatalf("uniform wager %.4f outside [100, 400]", got)
		}
	}
	// No loss recorded yet: upper bound collapses to the base wager.
	st2 := NewState(100)
	st2.LastWager = 100
	if got := c.Next(Randomized, false, 1, 0, st2); got != 100 {
		t.Errorf("uniform with no prior loss should stake base, got %.4f", got)
	}
}

func TestRandomized_MultiplierModeBounds(t *testing.T) {
	c := newTestCalc(Params{
		RandomizedMode:    RandomizedMultiplier,
		RandomizedMinMult: 1.02,
		RandomizedMaxMult: 1.35,
	}, 13)
	st := NewState(100)
	st.LastWager = 100
	for i := 0; i < 200; i++ {
		got := c.Next(Randomized, false, i+1, 100, st)
		if got < 102 || got > 135 {
			t.Fatalf("multiplier wager %.4f outside [102, 135]", got)
		}
		st.LastWager = 100
	}
	if got := c.Next(Randomized, true, 201, 100, st); got != 100 {
		t.Errorf("win should reset to base, got %.4f", got)
	}
}

func TestChanceOverride(t *testing.T) {
	c := newTestCalc(Params{JackpotChance: 1.0, HighRiskChance: 5.0}, 1)
	if got := c.ChanceOverride(JackpotHunter); got != 1.0 {
		t.Errorf("jackpot override = %.2f, want 1.00", got)
	}
	if got := c.ChanceOverride(HighRiskPulse); got != 5.0 {
		t.Errorf("high risk override = %.2f, want 5.00", got)
	}
	if got := c.ChanceOverride(Martingale); got != 0 {
		t.Errorf("martingale should not override chance, got %.2f", got)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants {
		got, err := ParseVariant(string(v))
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v, got, err)
		}
	}
	if _, err := ParseVariant("labouchere"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestRound8(t *testing.T) {
	if got := Round8(0.123456789); got != 0.12345679 {
		t.Errorf("Round8 = %.9f, want 0.12345679", got)
	}
	if got := Round8(1e-9); got != 0 {
		t.Errorf("Round8 below denomination = %v, want 0", got)
	}
}
