package model

// Holding is one row of the portfolio CSV.
type Holding struct {
	Ticker  string
	Shares  float64
	AvgCost float64
	Sector  string
}

// Candidate is one row of the rotation universe CSV. Candidates are not
// necessarily held; shares and cost basis do not apply here.
type Candidate struct {
	Ticker          string
	CompanyName     string
	Sector          string
	GrowthPct3y     float64
	AIExposureScore float64
}
