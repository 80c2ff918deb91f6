// Package portfolio loads the held-positions and rotation-universe CSV files.
package portfolio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"PortfolioSentinel/internal/model"
)

// LoadHoldings reads the portfolio CSV. Required columns (any order,
// case-insensitive, surrounding whitespace ignored): ticker, shares,
// avg_cost, sector. Tickers are upper-cased.
func LoadHoldings(path string) ([]model.Holding, error) {
	records, cols, err := readCSV(path, []string{"ticker", "shares", "avg_cost", "sector"})
	if err != nil {
		return nil, err
	}

	holdings := make([]model.Holding, 0, len(records))
	for i, rec := range records {
		shares, err := parseFloat(rec[cols["shares"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: shares: %w", path, i+2, err)
		}
		avgCost, err := parseFloat(rec[cols["avg_cost"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: avg_cost: %w", path, i+2, err)
		}
		holdings = append(holdings, model.Holding{
			Ticker:  normalizeTicker(rec[cols["ticker"]]),
			Shares:  shares,
			AvgCost: avgCost,
			Sector:  strings.TrimSpace(rec[cols["sector"]]),
		})
	}
	return holdings, nil
}

// LoadUniverse reads the rotation-universe CSV. Required columns: ticker,
// company_name, sector, growth_pct_3y, ai_exposure.
func LoadUniverse(path string) ([]model.Candidate, error) {
	records, cols, err := readCSV(path, []string{"ticker", "company_name", "sector", "growth_pct_3y", "ai_exposure"})
	if err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, 0, len(records))
	for i, rec := range records {
		growth, err := parseFloat(rec[cols["growth_pct_3y"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: growth_pct_3y: %w", path, i+2, err)
		}
		exposure, err := parseFloat(rec[cols["ai_exposure"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: ai_exposure: %w", path, i+2, err)
		}
		candidates = append(candidates, model.Candidate{
			Ticker:          normalizeTicker(rec[cols["ticker"]]),
			CompanyName:     strings.TrimSpace(rec[cols["company_name"]]),
			Sector:          strings.TrimSpace(rec[cols["sector"]]),
			GrowthPct3y:     growth,
			AIExposureScore: exposure,
		})
	}
	return candidates, nil
}

// readCSV reads the file, normalizes the header and verifies the required
// columns are present. Returns the data records and a column index map.
func readCSV(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%s: missing required columns: %s", path, strings.Join(missing, ", "))
	}

	return rows[1:], cols, nil
}

func normalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
