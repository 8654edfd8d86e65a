package ledger

import (
	"time"

	"wolfdice/internal/model"
)

// historyDepth bounds the trailing round history kept for display.
const historyDepth = 32

// Ledger is the accumulating session state. It has exactly one mutator,
// the session controller, so it carries no locking. ApplyWin and
// ApplyLoss are the only paths that touch Profit.
type Ledger struct {
	Profit          float64
	TotalRounds     int
	Won             int
	Lost            int
	LossStreak      int
	LossStreakTotal float64
	LastLossAmount  float64
	LastOutcome     model.Outcome

	startedAt time.Time
	history   []model.RoundRecord
}

// New creates a fresh Ledger with the session clock started.
func New() *Ledger {
	return &Ledger{startedAt: time.Now()}
}

// ApplyWin resolves a winning round with the given payout.
func (l *Ledger) ApplyWin(payout float64) {
	l.Profit += payout
	l.TotalRounds++
	l.Won++
	l.LossStreak = 0
	l.LossStreakTotal = 0
	l.LastLossAmount = 0
	l.LastOutcome = model.OutcomeWin
}

// ApplyLoss resolves a losing round with the amount actually charged.
func (l *Ledger) ApplyLoss(amount float64) {
	l.Profit -= amount
	l.TotalRounds++
	l.Lost++
	l.LossStreak++
	l.LossStreakTotal += amount
	l.LastLossAmount = amount
	l.LastOutcome = model.OutcomeLose
}

// Record appends a rendered round to the bounded display history.
func (l *Ledger) Record(rec model.RoundRecord) {
	l.history = append(l.history, rec)
	if len(l.history) > historyDepth {
		l.history = l.history[len(l.history)-historyDepth:]
	}
}

// History returns the trailing rounds, oldest first. Display only, not
// authoritative state.
func (l *Ledger) History() []model.RoundRecord {
	return l.history
}

// Elapsed returns the session runtime so far.
func (l *Ledger) Elapsed() time.Duration {
	return time.Since(l.startedAt)
}

// Stats returns the read-only snapshot emitted after each round.
func (l *Ledger) Stats(activeStrategy string) model.SessionStats {
	return model.SessionStats{
		Profit:         l.Profit,
		TotalRounds:    l.TotalRounds,
		Won:            l.Won,
		Lost:           l.Lost,
		Elapsed:        l.Elapsed(),
		ActiveStrategy: activeStrategy,
	}
}
