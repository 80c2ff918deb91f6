package collector

import "PortfolioSentinel/internal/model"

// Fetcher defines the interface for fetching daily closing-price history.
type Fetcher interface {
	FetchDailyCloses(symbol string, days int) ([]model.Bar, error)
	Name() string
}
