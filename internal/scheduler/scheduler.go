package scheduler

import (
	"context"
	"fmt"
	"log"

	"PortfolioSentinel/internal/notifier"
	"PortfolioSentinel/internal/recorder"
	"PortfolioSentinel/internal/review"

	"github.com/robfig/cron/v3"
)

// rotationTopN caps how many ranked candidates the rotation report shows.
const rotationTopN = 15

// Scheduler manages the cron tasks and the Telegram command surface.
type Scheduler struct {
	Cron     *cron.Cron
	Reviewer *review.Reviewer
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, rev *review.Reviewer, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Reviewer: rev,
		Notifier: tn,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the review and rotation tasks.
func (s *Scheduler) RegisterAll(reviewCron, rotationCron string) error {
	if _, err := s.Cron.AddFunc(reviewCron, s.reviewTask); err != nil {
		return fmt.Errorf("register review task: %w", err)
	}
	if len(s.Reviewer.Universe) > 0 {
		if _, err := s.Cron.AddFunc(rotationCron, s.rotationTask); err != nil {
			return fmt.Errorf("register rotation task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunReviewNow executes the review task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunReviewNow() {
	s.reviewTask()
}

func (s *Scheduler) reviewTask() {
	log.Println("[INFO] running portfolio review")
	rep, err := s.Reviewer.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] portfolio review: %v", err)
		s.trySend(fmt.Sprintf("❌ Portfolio review failed: %v", err))
		return
	}

	s.trySend(notifier.FormatReviewReport(rep) + "\n" + notifier.FormatFooter(rep.GeneratedAt))

	if err := s.Recorder.RecordReview(rep); err != nil {
		log.Printf("[ERROR] record review: %v", err)
	}
}

func (s *Scheduler) rotationTask() {
	log.Println("[INFO] running rotation scan")
	rep, err := s.Reviewer.RunRotation(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] rotation scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Rotation scan failed: %v", err))
		return
	}

	s.trySend(notifier.FormatRotationReport(rep, rotationTopN) + "\n" + notifier.FormatFooter(rep.GeneratedAt))

	if err := s.Recorder.RecordRotation(rep); err != nil {
		log.Printf("[ERROR] record rotation: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/review":
		s.reviewTask()
		return ""
	case "/rotation":
		if len(s.Reviewer.Universe) == 0 {
			return "No rotation universe configured"
		}
		s.rotationTask()
		return ""
	case "/rules":
		return notifier.FormatStrategyRules()
	default:
		return "Available commands:\n• /review — run the portfolio review now\n• /rotation — rank rotation candidates\n• /rules — show the strategy rules"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
