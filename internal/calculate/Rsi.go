package calculate

import (
	"math"

	"github.com/markcheno/go-talib"
)

// RSI needs period price changes, so one bar more than its period
func rsiWarmUp(period int) int {
	return period + 1
}

func calculateRSI(closes []float64, period int) float64 {
	if len(closes) < rsiWarmUp(period) {
		return math.NaN()
	}
	return latest(talib.Rsi(closes, period))
}
