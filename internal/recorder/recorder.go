package recorder

import "wolfdice/internal/model"

// RoundEvent holds everything persisted for one resolved round.
type RoundEvent struct {
	SessionID string
	Record    model.RoundRecord
	Profit    float64
}

// Recorder persists session history for later analysis.
type Recorder interface {
	RecordSessionStart(sum *model.SessionSummary) error
	RecordRound(evt *RoundEvent) error
	RecordSessionEnd(sum *model.SessionSummary) error
	Close() error
}
