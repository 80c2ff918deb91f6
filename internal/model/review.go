package model

import "time"

// ReviewRow is one rendered line of the portfolio action table.
type ReviewRow struct {
	Ticker       string
	Sector       string
	SharesHeld   float64
	SharesToSell float64 // SharesHeld * SellFraction, rounded to 4 decimals
	AvgCost      float64
	Price        float64
	DMA200       float64
	DistPct      float64 // distance from the 200 DMA in percent
	Action       Action
	Reason       string
}

// ReviewReport is the full output of one portfolio review cycle.
// Rows are sorted by DistPct ascending (deepest discount first).
type ReviewReport struct {
	Rows           []ReviewRow
	IndexSymbol    string
	IndexDist      float64 // broad-index distance from its 200 DMA
	MarketExtended bool
	Skipped        []string
	GeneratedAt    time.Time
}

// RotationEntry is one scored candidate from the rotation universe.
type RotationEntry struct {
	Ticker      string
	CompanyName string
	Sector      string
	Price       float64
	DMA200      float64
	DistPct     float64
	Action      Action
	GrowthPct3y float64
	AIExposure  float64
	Score       int // composite rotation score, 0-100
}

// RotationReport ranks universe candidates by rotation score descending.
type RotationReport struct {
	Entries        []RotationEntry
	IndexSymbol    string
	IndexDist      float64
	MarketExtended bool
	Skipped        []string
	GeneratedAt    time.Time
}
