package strategy

import "fmt"

// SwitchMode selects the trigger that advances the strategy cycle.
type SwitchMode string

const (
	SwitchOnWin        SwitchMode = "on_win"
	SwitchOnLossStreak SwitchMode = "on_loss_streak"
)

// ParseSwitchMode validates a switch mode name from config.
func ParseSwitchMode(name string) (SwitchMode, error) {
	switch SwitchMode(name) {
	case SwitchOnWin, SwitchOnLossStreak:
		return SwitchMode(name), nil
	}
	return "", fmt.Errorf("unknown strategy switch mode %q", name)
}

// Selector walks the configured strategy cycle. It owns its own
// loss-streak counter so that advancing the cycle never touches the
// session ledger. A disabled selector (empty cycle) keeps the initial
// strategy for the whole session.
type Selector struct {
	active  Variant
	cycle   []Variant
	index   int
	mode    SwitchMode
	trigger int
	streak  int
}

// NewSelector creates a Selector starting at initial. If initial is part
// of the cycle, the cycle continues from its position.
func NewSelector(initial Variant, cycle []Variant, mode SwitchMode, trigger int) *Selector {
	s := &Selector{active: initial, cycle: cycle, mode: mode, trigger: trigger}
	for i, v := range cycle {
		if v == initial {
			s.index = i
			break
		}
	}
	return s
}

// Active returns the strategy in effect for the next round.
func (s *Selector) Active() Variant { return s.active }

// AfterRound observes a fully processed round and reports whether the
// active strategy changed. The caller must reseed the strategy state
// (and the next wager, to the base wager) when it did.
func (s *Selector) AfterRound(won bool) bool {
	if len(s.cycle) == 0 {
		return false
	}
	switch s.mode {
	case SwitchOnWin:
		if !won {
			return false
		}
		s.advance()
		return true
	case SwitchOnLossStreak:
		if won {
			s.streak = 0
			return false
		}
		s.streak++
		if s.streak < s.trigger {
			return false
		}
		s.streak = 0
		s.advance()
		return true
	}
	return false
}

func (s *Selector) advance() {
	s.index = (s.index + 1) % len(s.cycle)
	s.active = s.cycle[s.index]
}
