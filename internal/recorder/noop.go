package recorder

import "wolfdice/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSessionStart(_ *model.SessionSummary) error { return nil }
func (n *NoopRecorder) RecordRound(_ *RoundEvent) error                  { return nil }
func (n *NoopRecorder) RecordSessionEnd(_ *model.SessionSummary) error   { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
