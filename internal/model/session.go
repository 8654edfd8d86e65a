package model

import "time"

// EndReason says why a session stopped.
type EndReason string

const (
	EndStopLoss    EndReason = "STOP_LOSS"
	EndTakeProfit  EndReason = "TAKE_PROFIT"
	EndInterrupted EndReason = "INTERRUPTED"
	EndSubmitError EndReason = "SUBMIT_ERROR"
)

// RoundRecord is the per-round projection emitted after each resolved round.
type RoundRecord struct {
	Round       int
	Threshold   float64
	Rule        Rule
	ResultValue float64
	Wager       float64
	NextWager   float64
	Outcome     Outcome
	DeltaProfit float64
	Strategy    string
}

// SessionStats is the running snapshot shown after every round.
type SessionStats struct {
	Profit         float64
	TotalRounds    int
	Won            int
	Lost           int
	Elapsed        time.Duration
	ActiveStrategy string
}

// SessionSummary is the end-of-session report.
type SessionSummary struct {
	ID             string
	Currency       string
	StartBalance   float64
	Profit         float64
	TotalRounds    int
	Won            int
	Lost           int
	Elapsed        time.Duration
	ActiveStrategy string
	Reason         EndReason
}
