package strategy

import (
	"math"

	"PortfolioSentinel/internal/model"
)

// Decide maps a price and its 200-day moving average to a portfolio action.
// The caller must guarantee dma > 0; tickers with fewer than 200 closes are
// filtered upstream and never reach this function.
//
// Branch order matters: the near-DMA band is checked before the buy zone,
// and the first match wins. Near the lower edge of the near-DMA band both
// conditions can hold at once; the check order is what resolves that, so
// do not reorder these cases.
func (c Config) Decide(price, dma float64) model.Decision {
	dist := (price - dma) / dma

	switch {
	// Staggered sell logic
	case dist >= c.SellL3:
		return model.Decision{Action: model.ActionHoldCore, Reason: "Extreme extension; stop selling"}
	case dist >= c.SellL2:
		return model.Decision{Action: model.ActionSellPartial, SellFraction: c.SellL2Pct, Reason: ">20% above 200 DMA"}
	case dist >= c.SellL1:
		return model.Decision{Action: model.ActionSellPartial, SellFraction: c.SellL1Pct, Reason: ">15% above 200 DMA"}

	// Buy logic
	case math.Abs(dist) <= c.NearDMA:
		return model.Decision{Action: model.ActionSmallBuy, Reason: "Near 200 DMA"}
	case c.BuyZoneLow <= price/dma && price/dma <= c.BuyZoneHigh:
		return model.Decision{Action: model.ActionAccumulate, Reason: "Inside virtual CSP buy zone"}
	case price < dma*c.DeepBuy:
		return model.Decision{Action: model.ActionAggressiveBuy, Reason: "Deep discount to 200 DMA"}

	default:
		return model.Decision{Action: model.ActionWait, Reason: "No edge"}
	}
}

// AnnotateMarketContext appends a market-wide extension note to sell
// decisions when the broad index itself trades far above its 200 DMA.
// Pure string annotation; it never changes the action or the fraction.
func (c Config) AnnotateMarketContext(d model.Decision, indexDist float64) model.Decision {
	if indexDist > c.IndexExtreme && d.Action.IsSell() {
		d.Reason += " | Market-wide tech extension"
	}
	return d
}
