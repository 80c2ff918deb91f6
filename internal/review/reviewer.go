// Package review runs the decision engine across the held portfolio and,
// in rotation mode, across the candidate universe.
package review

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/strategy"
)

// Reviewer wires the portfolio sources, the price collector and the
// strategy thresholds. Each run recomputes everything from freshly
// fetched inputs; there is no incremental state between cycles.
type Reviewer struct {
	Collector *collector.Collector
	Strategy  strategy.Config
	Holdings  []model.Holding
	Universe  []model.Candidate
}

// NewReviewer creates a Reviewer. universe may be nil when rotation mode
// is not configured.
func NewReviewer(col *collector.Collector, cfg strategy.Config, holdings []model.Holding, universe []model.Candidate) *Reviewer {
	return &Reviewer{Collector: col, Strategy: cfg, Holdings: holdings, Universe: universe}
}

// Run executes one full review cycle over the held portfolio.
func (r *Reviewer) Run(ctx context.Context) (*model.ReviewReport, error) {
	indexDist := r.Collector.IndexDistance()
	report := &model.ReviewReport{
		IndexSymbol:    r.Collector.IndexSymbol,
		IndexDist:      indexDist,
		MarketExtended: indexDist > r.Strategy.IndexExtreme,
		GeneratedAt:    time.Now(),
	}

	for _, h := range r.Holdings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, ok := r.snapshot(h.Ticker, report)
		if !ok {
			continue
		}

		d := r.Strategy.Decide(snap.Price, snap.DMA200)
		d = r.Strategy.AnnotateMarketContext(d, indexDist)
		dist := calculator.Distance(snap.Price, snap.DMA200)

		report.Rows = append(report.Rows, model.ReviewRow{
			Ticker:       h.Ticker,
			Sector:       h.Sector,
			SharesHeld:   h.Shares,
			SharesToSell: round(h.Shares*d.SellFraction, 4),
			AvgCost:      round(h.AvgCost, 2),
			Price:        round(snap.Price, 2),
			DMA200:       round(snap.DMA200, 2),
			DistPct:      round(dist*100, 2),
			Action:       d.Action,
			Reason:       d.Reason,
		})
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].DistPct < report.Rows[j].DistPct
	})
	return report, nil
}

// RunRotation scores the candidate universe and ranks buy candidates.
func (r *Reviewer) RunRotation(ctx context.Context) (*model.RotationReport, error) {
	indexDist := r.Collector.IndexDistance()
	report := &model.RotationReport{
		IndexSymbol:    r.Collector.IndexSymbol,
		IndexDist:      indexDist,
		MarketExtended: indexDist > r.Strategy.IndexExtreme,
		GeneratedAt:    time.Now(),
	}

	for _, c := range r.Universe {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap, ok := r.snapshotRotation(c.Ticker, report)
		if !ok {
			continue
		}

		d := r.Strategy.Decide(snap.Price, snap.DMA200)
		distPct := calculator.Distance(snap.Price, snap.DMA200) * 100
		score := r.Strategy.RotationScore(distPct, d.Action, c.GrowthPct3y, c.AIExposureScore, report.MarketExtended)

		report.Entries = append(report.Entries, model.RotationEntry{
			Ticker:      c.Ticker,
			CompanyName: c.CompanyName,
			Sector:      c.Sector,
			Price:       round(snap.Price, 2),
			DMA200:      round(snap.DMA200, 2),
			DistPct:     round(distPct, 2),
			Action:      d.Action,
			GrowthPct3y: c.GrowthPct3y,
			AIExposure:  c.AIExposureScore,
			Score:       score,
		})
	}

	sort.Slice(report.Entries, func(i, j int) bool {
		a, b := report.Entries[i], report.Entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.DistPct < b.DistPct
	})
	return report, nil
}

func (r *Reviewer) snapshot(ticker string, report *model.ReviewReport) (*model.Snapshot, bool) {
	snap, err := r.Collector.Snapshot(ticker)
	if err != nil {
		logSkip(ticker, err)
		report.Skipped = append(report.Skipped, ticker)
		return nil, false
	}
	return snap, true
}

func (r *Reviewer) snapshotRotation(ticker string, report *model.RotationReport) (*model.Snapshot, bool) {
	snap, err := r.Collector.Snapshot(ticker)
	if err != nil {
		logSkip(ticker, err)
		report.Skipped = append(report.Skipped, ticker)
		return nil, false
	}
	return snap, true
}

func logSkip(ticker string, err error) {
	if errors.Is(err, calculator.ErrInsufficientHistory) {
		log.Printf("[WARN] skipping %s: %v", ticker, err)
		return
	}
	log.Printf("[ERROR] snapshot %s: %v", ticker, err)
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
