package strategy

import "fmt"

// Config is the fixed threshold set for the CSP-equivalent rules.
// It is built once at startup and never mutated afterwards; both Decide
// and RotationScore are pure functions over it.
type Config struct {
	SellL1    float64 `yaml:"sell_l1"`     // +15% above 200 DMA
	SellL2    float64 `yaml:"sell_l2"`     // +20%
	SellL3    float64 `yaml:"sell_l3"`     // +30%, stop selling beyond this
	SellL1Pct float64 `yaml:"sell_l1_pct"` // fraction sold at L1
	SellL2Pct float64 `yaml:"sell_l2_pct"` // fraction sold at L2

	BuyZoneLow  float64 `yaml:"buy_zone_low"`  // 8% below 200 DMA
	BuyZoneHigh float64 `yaml:"buy_zone_high"` // 3% below 200 DMA
	DeepBuy     float64 `yaml:"deep_buy"`      // aggressive buy below this price/DMA ratio
	NearDMA     float64 `yaml:"near_dma"`      // ±3% band around the 200 DMA

	IndexExtreme float64 `yaml:"index_extreme"` // broad-index distance beyond which the market counts as extended
}

// DefaultConfig returns the stock thresholds of the strategy.
func DefaultConfig() Config {
	return Config{
		SellL1:       0.15,
		SellL2:       0.20,
		SellL3:       0.30,
		SellL1Pct:    0.25,
		SellL2Pct:    0.25,
		BuyZoneLow:   0.92,
		BuyZoneHigh:  0.97,
		DeepBuy:      0.90,
		NearDMA:      0.03,
		IndexExtreme: 0.12,
	}
}

// Validate checks that the thresholds are ordered so the decision table
// stays mutually exclusive.
func (c Config) Validate() error {
	if !(c.SellL1 > 0 && c.SellL2 > c.SellL1 && c.SellL3 > c.SellL2) {
		return fmt.Errorf("sell thresholds must satisfy 0 < sell_l1 < sell_l2 < sell_l3")
	}
	if c.SellL1Pct <= 0 || c.SellL1Pct > 1 {
		return fmt.Errorf("sell_l1_pct must be in (0,1]")
	}
	if c.SellL2Pct <= 0 || c.SellL2Pct > 1 {
		return fmt.Errorf("sell_l2_pct must be in (0,1]")
	}
	if !(c.BuyZoneLow > 0 && c.BuyZoneLow < c.BuyZoneHigh && c.BuyZoneHigh < 1) {
		return fmt.Errorf("buy zone must satisfy 0 < buy_zone_low < buy_zone_high < 1")
	}
	if c.DeepBuy <= 0 || c.DeepBuy > c.BuyZoneLow {
		return fmt.Errorf("deep_buy must be in (0, buy_zone_low]")
	}
	if c.NearDMA <= 0 || c.NearDMA >= c.SellL1 {
		return fmt.Errorf("near_dma must be in (0, sell_l1)")
	}
	if c.IndexExtreme <= 0 {
		return fmt.Errorf("index_extreme must be positive")
	}
	return nil
}
