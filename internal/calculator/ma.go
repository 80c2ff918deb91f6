package calculator

import (
	"errors"

	"PortfolioSentinel/internal/model"
)

// ErrInsufficientHistory is returned when a price series is shorter than
// the requested averaging period.
var ErrInsufficientHistory = errors.New("insufficient price history")

// CalculateSMA computes the simple moving average of the last period closes.
func CalculateSMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period {
		return 0, ErrInsufficientHistory
	}
	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(period), nil
}

// CalculateDMA200 returns the 200-day simple moving average from daily bars.
func CalculateDMA200(bars []model.Bar) (float64, error) {
	return CalculateSMA(extractCloses(bars), 200)
}

// Distance returns the signed fractional deviation of price from avg.
// The caller must guarantee avg > 0.
func Distance(price, avg float64) float64 {
	return (price - avg) / avg
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
