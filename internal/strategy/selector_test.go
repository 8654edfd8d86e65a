package strategy

import "testing"

func TestSelector_OnWinAdvancesAndWraps(t *testing.T) {
	cycle := []Variant{Martingale, Fibonacci, Flat}
	s := NewSelector(Martingale, cycle, SwitchOnWin, 0)

	if s.AfterRound(false) {
		t.Error("loss must not switch in on_win mode")
	}
	if !s.AfterRound(true) || s.Active() != Fibonacci {
		t.Errorf("after win: active %s, want fibonacci", s.Active())
	}
	if !s.AfterRound(true) || s.Active() != Flat {
		t.Errorf("after second win: active %s, want flat", s.Active())
	}
	if !s.AfterRound(true) || s.Active() != Martingale {
		t.Errorf("cycle should wrap: active %s, want martingale", s.Active())
	}
}

func TestSelector_OnLossStreakTrigger(t *testing.T) {
	cycle := []Variant{Martingale, Fibonacci}
	s := NewSelector(Martingale, cycle, SwitchOnLossStreak, 3)

	// Two losses then a win: counter resets, no switch.
	for _, won := range []bool{false, false, true} {
		if s.AfterRound(won) {
			t.Fatal("switched before the trigger was reached")
		}
	}
	if s.Active() != Martingale {
		t.Fatalf("active %s, want martingale", s.Active())
	}

	// Exactly three consecutive losses: switch once on the third.
	if s.AfterRound(false) || s.AfterRound(false) {
		t.Fatal("switched before the trigger was reached")
	}
	if !s.AfterRound(false) {
		t.Fatal("expected switch on third consecutive loss")
	}
	if s.Active() != Fibonacci {
		t.Fatalf("active %s, want fibonacci", s.Active())
	}

	// The counter reset on the switch: the next loss must not switch again.
	if s.AfterRound(false) {
		t.Error("switched twice for one trigger crossing")
	}
}

func TestSelector_StartsFromInitialPosition(t *testing.T) {
	cycle := []Variant{Martingale, Fibonacci, Flat}
	s := NewSelector(Fibonacci, cycle, SwitchOnWin, 0)
	s.AfterRound(true)
	if s.Active() != Flat {
		t.Errorf("active %s, want flat (cycle continues from initial)", s.Active())
	}
}

func TestSelector_EmptyCycleNeverSwitches(t *testing.T) {
	s := NewSelector(Martingale, nil, SwitchOnWin, 0)
	for i := 0; i < 10; i++ {
		if s.AfterRound(i%2 == 0) {
			t.Fatal("selector with empty cycle switched")
		}
	}
	if s.Active() != Martingale {
		t.Errorf("active %s, want martingale", s.Active())
	}
}

func TestParseSwitchMode(t *testing.T) {
	if _, err := ParseSwitchMode("on_win"); err != nil {
		t.Errorf("on_win: %v", err)
	}
	if _, err := ParseSwitchMode("on_loss_streak"); err != nil {
		t.Errorf("on_loss_streak: %v", err)
	}
	if _, err := ParseSwitchMode("hourly"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
