// Package cache wraps a collector.Fetcher with a TTL'd on-disk snapshot of
// price history, so repeated refreshes within the TTL do not hammer the
// upstream API.
package cache

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/model"
)

type entry struct {
	Bars      []model.Bar `json:"bars"`
	Days      int         `json:"days"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// Fetcher is a caching decorator around another collector.Fetcher.
type Fetcher struct {
	mu       sync.Mutex
	upstream collector.Fetcher
	filePath string
	ttl      time.Duration
	entries  map[string]entry
}

// NewFetcher creates a caching fetcher persisting to filePath. A stale or
// missing cache file is not an error; the cache starts empty.
func NewFetcher(upstream collector.Fetcher, filePath string, ttl time.Duration) *Fetcher {
	f := &Fetcher{
		upstream: upstream,
		filePath: filePath,
		ttl:      ttl,
		entries:  map[string]entry{},
	}
	if err := f.load(); err != nil {
		log.Printf("[WARN] load price cache: %v, starting empty", err)
	}
	return f
}

func (f *Fetcher) Name() string { return f.upstream.Name() + "+cache" }

// FetchDailyCloses serves from cache when the stored entry is fresh and
// covers at least the requested number of days.
func (f *Fetcher) FetchDailyCloses(symbol string, days int) ([]model.Bar, error) {
	f.mu.Lock()
	if e, ok := f.entries[symbol]; ok && e.Days >= days && time.Since(e.FetchedAt) < f.ttl {
		bars := e.Bars
		f.mu.Unlock()
		if len(bars) > days {
			bars = bars[len(bars)-days:]
		}
		return bars, nil
	}
	f.mu.Unlock()

	bars, err := f.upstream.FetchDailyCloses(symbol, days)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.entries[symbol] = entry{Bars: bars, Days: days, FetchedAt: time.Now()}
	if err := f.save(); err != nil {
		log.Printf("[ERROR] save price cache: %v", err)
	}
	f.mu.Unlock()

	return bars, nil
}

func (f *Fetcher) load() error {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &f.entries)
}

func (f *Fetcher) save() error {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.filePath, data, 0644)
}
