package recorder

import "PortfolioSentinel/internal/model"

// Recorder persists review output for later analysis.
type Recorder interface {
	RecordReview(rep *model.ReviewReport) error
	RecordRotation(rep *model.RotationReport) error
	Close() error
}
