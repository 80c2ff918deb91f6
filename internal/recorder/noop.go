package recorder

import "PortfolioSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReview(_ *model.ReviewReport) error     { return nil }
func (n *NoopRecorder) RecordRotation(_ *model.RotationReport) error { return nil }
func (n *NoopRecorder) Close() error                                 { return nil }
