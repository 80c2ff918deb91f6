package model

// Action is the portfolio action produced for a single ticker.
type Action string

const (
	ActionHoldCore      Action = "HOLD CORE"
	ActionSellPartial   Action = "SELL PARTIAL"
	ActionSmallBuy      Action = "SMALL BUY"
	ActionAccumulate    Action = "ACCUMULATE"
	ActionAggressiveBuy Action = "AGGRESSIVE BUY"
	ActionWait          Action = "WAIT"
)

// IsSell reports whether the action reduces an existing position.
func (a Action) IsSell() bool { return a == ActionSellPartial }

// Decision is the strategy output for one ticker.
type Decision struct {
	Action       Action
	SellFraction float64 // fraction of the position to sell, 0 for non-sell actions
	Reason       string
}
