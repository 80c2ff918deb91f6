package strategy

import "PortfolioSentinel/internal/model"

// actionScores ranks how aggressively each action invites fresh capital.
// Actions absent from the table (the sell side) contribute nothing.
var actionScores = map[model.Action]int{
	model.ActionAggressiveBuy: 25,
	model.ActionAccumulate:    20,
	model.ActionSmallBuy:      15,
	model.ActionWait:          5,
}

// RotationScore ranks a buy candidate on a 0-100 scale: distance from the
// 200 DMA (max 40) + action (max 25) + 3-year growth (15 or 5) + AI
// exposure (15 or 5), minus a 15-point penalty when the broad market is
// extended, clamped to [0,100].
func (c Config) RotationScore(distPct float64, action model.Action, growthPct, exposure float64, marketExtended bool) int {
	score := distanceScore(distPct) + actionScores[action]

	if growthPct >= 15 {
		score += 15
	} else {
		score += 5
	}
	if exposure >= 70 {
		score += 15
	} else {
		score += 5
	}
	if marketExtended {
		score -= 15
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// distanceScore rewards prices at or below the 200 DMA. distPct is the
// distance in percent, negative below the average.
func distanceScore(distPct float64) int {
	switch {
	case distPct <= -5:
		return 40
	case distPct <= 0:
		return 30
	case distPct <= 5:
		return 20
	case distPct <= 10:
		return 10
	default:
		return 0
	}
}
