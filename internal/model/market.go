package model

import "time"

// Bar is a single daily closing-price bar.
type Bar struct {
	Time  time.Time
	Close float64
}

// Snapshot holds the derived decision-engine inputs for one ticker.
type Snapshot struct {
	Ticker    string
	Price     float64 // latest daily close
	DMA200    float64 // 200-day simple moving average of closes
	FetchedAt time.Time
}
