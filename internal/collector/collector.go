package collector

import (
	"fmt"
	"log"
	"time"

	"PortfolioSentinel/internal/calculator"
	"PortfolioSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  map[string][]model.Bar // per-symbol history; falls back to generated bars
	Price float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(symbol string, days int) ([]model.Bar, error) {
	if bars, ok := m.Bars[symbol]; ok {
		if len(bars) > days {
			bars = bars[len(bars)-days:]
		}
		return bars, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

// GenerateMockBars builds a gently trending daily series ending near basePrice.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		bars[i] = model.Bar{
			Time:  time.Now().AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return bars
}

// Collector derives decision-engine inputs from fetched price history.
type Collector struct {
	Fetcher     Fetcher
	IndexSymbol string
	HistoryDays int
}

// NewCollector creates a Collector. indexSymbol is the broad index used
// for market-context annotation (e.g. ^IXIC).
func NewCollector(fetcher Fetcher, indexSymbol string, historyDays int) *Collector {
	if historyDays < 200 {
		historyDays = 300
	}
	return &Collector{Fetcher: fetcher, IndexSymbol: indexSymbol, HistoryDays: historyDays}
}

// Snapshot fetches history for one ticker and derives the latest close and
// its 200-day moving average. Tickers with fewer than 200 closes return an
// error wrapping calculator.ErrInsufficientHistory; they must be skipped,
// never fed to the decision engine.
func (c *Collector) Snapshot(ticker string) (*model.Snapshot, error) {
	bars, err := c.Fetcher.FetchDailyCloses(ticker, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily closes for %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, calculator.ErrInsufficientHistory)
	}

	dma, err := calculator.CalculateDMA200(bars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}

	return &model.Snapshot{
		Ticker:    ticker,
		Price:     bars[len(bars)-1].Close,
		DMA200:    dma,
		FetchedAt: time.Now(),
	}, nil
}

// IndexDistance returns the broad index's distance from its own 200 DMA.
// Falls back to 0.0 when the index cannot be fetched so a review can still
// run without market context.
func (c *Collector) IndexDistance() float64 {
	snap, err := c.Snapshot(c.IndexSymbol)
	if err != nil {
		log.Printf("[WARN] index distance unavailable: %v", err)
		return 0.0
	}
	return calculator.Distance(snap.Price, snap.DMA200)
}
