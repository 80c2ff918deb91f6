package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"PortfolioSentinel/internal/model"
)

// FileFetcher implements Fetcher from per-symbol CSV files in a directory.
// Each file is <dir>/<SYMBOL>.csv with a date,close header, one row per
// trading day. Index carets are stripped from filenames (^IXIC -> IXIC.csv).
// Used for offline runs and backfilled history.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a fetcher reading history from dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) FetchDailyCloses(symbol string, days int) ([]model.Bar, error) {
	name := strings.ToUpper(strings.TrimPrefix(symbol, "^")) + ".csv"
	path := filepath.Join(f.Dir, name)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	bars := make([]model.Bar, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("%s row %d: expected date,close", path, i+2)
		}
		t, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if c == 0 {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{Time: t, Close: c})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
