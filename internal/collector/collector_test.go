package collector

import (
	"errors"
	"testing"
	"time"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/model"
)

// flatBars returns count bars where the first count-1 closes average out so
// the 200-day mean is exactly dma while the last close is price.
func flatBars(price, dma float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	fill := (200*dma - price) / 199
	for i := 0; i < count; i++ {
		bars[i] = model.Bar{Time: time.Now().AddDate(0, 0, i - count), Close: fill}
	}
	bars[count-1].Close = price
	return bars
}

func TestSnapshot(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.Bar{
		"AAPL": flatBars(94, 100, 200),
	}}
	col := NewCollector(fetcher, "^IXIC", 300)

	snap, err := col.Snapshot("AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Price != 94 {
		t.Errorf("expected price 94, got %v", snap.Price)
	}
	if diff := snap.DMA200 - 100; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected DMA200 ~100, got %v", snap.DMA200)
	}
}

func TestSnapshot_InsufficientHistory(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.Bar{
		"IPO": flatBars(50, 50, 120),
	}}
	col := NewCollector(fetcher, "^IXIC", 300)

	_, err := col.Snapshot("IPO")
	if !errors.Is(err, calculator.ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestIndexDistance(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.Bar{
		"^IXIC": flatBars(115, 100, 200),
	}}
	col := NewCollector(fetcher, "^IXIC", 300)

	dist := col.IndexDistance()
	if diff := dist - 0.15; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected distance ~0.15, got %v", dist)
	}
}

func TestIndexDistance_FallsBackToZero(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.Bar{
		"^IXIC": flatBars(115, 100, 50), // too short
	}}
	col := NewCollector(fetcher, "^IXIC", 300)

	if dist := col.IndexDistance(); dist != 0 {
		t.Errorf("expected 0 fallback, got %v", dist)
	}
}
