package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/strategy"
)

// seriesFor builds 200 daily bars whose 200-day mean is dma and whose last
// close is price.
func seriesFor(price, dma float64) []model.Bar {
	bars := make([]model.Bar, 200)
	fill := (200*dma - price) / 199
	for i := range bars {
		bars[i] = model.Bar{Time: time.Now().AddDate(0, 0, i - 200), Close: fill}
	}
	bars[199].Close = price
	return bars
}

func newTestReviewer(indexBars []model.Bar, bars map[string][]model.Bar, holdings []model.Holding, universe []model.Candidate) *Reviewer {
	bars["^IXIC"] = indexBars
	fetcher := &collector.MockFetcher{Bars: bars}
	col := collector.NewCollector(fetcher, "^IXIC", 300)
	return NewReviewer(col, strategy.DefaultConfig(), holdings, universe)
}

func TestRun_BuildsSortedRows(t *testing.T) {
	r := newTestReviewer(
		seriesFor(103, 100), // index +3%, not extended
		map[string][]model.Bar{
			"TSLA": seriesFor(121, 100), // +21% -> SELL PARTIAL
			"AAPL": seriesFor(94, 100),  // -6%  -> ACCUMULATE
		},
		[]model.Holding{
			{Ticker: "TSLA", Shares: 10, AvgCost: 180, Sector: "Auto"},
			{Ticker: "AAPL", Shares: 25, AvgCost: 148.3, Sector: "Technology"},
		},
		nil,
	)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.False(t, rep.MarketExtended)
	assert.InDelta(t, 0.03, rep.IndexDist, 1e-6)

	// Sorted by distance ascending: AAPL (-6%) before TSLA (+21%)
	assert.Equal(t, "AAPL", rep.Rows[0].Ticker)
	assert.Equal(t, model.ActionAccumulate, rep.Rows[0].Action)
	assert.InDelta(t, -6.0, rep.Rows[0].DistPct, 1e-6)
	assert.Equal(t, 0.0, rep.Rows[0].SharesToSell)

	assert.Equal(t, "TSLA", rep.Rows[1].Ticker)
	assert.Equal(t, model.ActionSellPartial, rep.Rows[1].Action)
	assert.Equal(t, 2.5, rep.Rows[1].SharesToSell) // 10 shares * 0.25
	assert.Equal(t, ">20% above 200 DMA", rep.Rows[1].Reason)
}

func TestRun_AnnotatesSellsWhenMarketExtended(t *testing.T) {
	r := newTestReviewer(
		seriesFor(115, 100), // index +15% > 12% -> extended
		map[string][]model.Bar{
			"TSLA": seriesFor(121, 100),
			"AAPL": seriesFor(94, 100),
		},
		[]model.Holding{
			{Ticker: "TSLA", Shares: 10, AvgCost: 180, Sector: "Auto"},
			{Ticker: "AAPL", Shares: 25, AvgCost: 148.3, Sector: "Technology"},
		},
		nil,
	)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.MarketExtended)

	for _, row := range rep.Rows {
		switch row.Ticker {
		case "TSLA":
			assert.Contains(t, row.Reason, "Market-wide tech extension")
		case "AAPL":
			assert.NotContains(t, row.Reason, "Market-wide tech extension")
		}
	}
}

func TestRun_SkipsShortHistory(t *testing.T) {
	short := seriesFor(100, 100)[:120]
	r := newTestReviewer(
		seriesFor(103, 100),
		map[string][]model.Bar{
			"AAPL": seriesFor(94, 100),
			"IPO":  short,
		},
		[]model.Holding{
			{Ticker: "AAPL", Shares: 25, AvgCost: 148.3, Sector: "Technology"},
			{Ticker: "IPO", Shares: 5, AvgCost: 20, Sector: "Technology"},
		},
		nil,
	)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "AAPL", rep.Rows[0].Ticker)
	assert.Equal(t, []string{"IPO"}, rep.Skipped)
}

func TestRun_CancelledContext(t *testing.T) {
	r := newTestReviewer(
		seriesFor(103, 100),
		map[string][]model.Bar{"AAPL": seriesFor(94, 100)},
		[]model.Holding{{Ticker: "AAPL", Shares: 25, AvgCost: 148.3, Sector: "Technology"}},
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRotation_RanksByScore(t *testing.T) {
	r := newTestReviewer(
		seriesFor(103, 100), // not extended
		map[string][]model.Bar{
			"NVDA": seriesFor(85, 100),  // -15% -> AGGRESSIVE BUY
			"CRM":  seriesFor(106, 100), // +6%  -> WAIT
		},
		nil,
		[]model.Candidate{
			{Ticker: "CRM", CompanyName: "Salesforce", Sector: "Software", GrowthPct3y: 5, AIExposureScore: 10},
			{Ticker: "NVDA", CompanyName: "NVIDIA Corp.", Sector: "Semiconductors", GrowthPct3y: 58, AIExposureScore: 95},
		},
	)

	rep, err := r.RunRotation(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Entries, 2)
	assert.False(t, rep.MarketExtended)

	// NVDA: 40 (dist) + 25 (aggressive buy) + 15 (growth) + 15 (exposure) = 95
	assert.Equal(t, "NVDA", rep.Entries[0].Ticker)
	assert.Equal(t, 95, rep.Entries[0].Score)
	assert.Equal(t, model.ActionAggressiveBuy, rep.Entries[0].Action)

	// CRM: 10 (dist) + 5 (wait) + 5 + 5 = 25
	assert.Equal(t, "CRM", rep.Entries[1].Ticker)
	assert.Equal(t, 25, rep.Entries[1].Score)
}

func TestRunRotation_AppliesMarketPenalty(t *testing.T) {
	r := newTestReviewer(
		seriesFor(115, 100), // extended
		map[string][]model.Bar{"NVDA": seriesFor(85, 100)},
		nil,
		[]model.Candidate{
			{Ticker: "NVDA", CompanyName: "NVIDIA Corp.", Sector: "Semiconductors", GrowthPct3y: 58, AIExposureScore: 95},
		},
	)

	rep, err := r.RunRotation(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Entries, 1)
	assert.True(t, rep.MarketExtended)
	assert.Equal(t, 80, rep.Entries[0].Score) // 95 - 15 penalty
}

func TestRoundHelper(t *testing.T) {
	assert.Equal(t, 2.5, round(2.5, 4))
	assert.Equal(t, 0.3333, round(1.0/3.0, 4))
	assert.Equal(t, 21.0, round(21.000000000000004, 2))
}
