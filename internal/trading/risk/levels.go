package risk

import "github.com/Alias1177/QuotexSignals/models"

const (
	DefaultStopLossPct   = 0.01
	DefaultTakeProfitPct = 0.02
)

// Calculator derives fixed-percentage stop-loss and take-profit levels
type Calculator struct {
	StopLossPct   float64 `yaml:"stop_loss_pct"`
	TakeProfitPct float64 `yaml:"take_profit_pct"`
}

// NewCalculator returns a calculator with the 1% / 2% defaults
func NewCalculator() Calculator {
	return Calculator{
		StopLossPct:   DefaultStopLossPct,
		TakeProfitPct: DefaultTakeProfitPct,
	}
}

// Levels returns the stop-loss and take-profit for an entry.
// Anything that is not BUY gets the short-side levels, NEUTRAL included.
func (c Calculator) Levels(entry float64, direction models.Direction) (stopLoss, takeProfit float64) {
	if direction == models.DirectionBuy {
		return entry * (1 - c.StopLossPct), entry * (1 + c.TakeProfitPct)
	}
	return entry * (1 + c.StopLossPct), entry * (1 - c.TakeProfitPct)
}
