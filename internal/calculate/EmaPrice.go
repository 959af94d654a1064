package calculate

import (
	"math"

	"github.com/markcheno/go-talib"
)

func emaWarmUp(period int) int {
	return period
}

func calculateEMA(closes []float64, period int) float64 {
	if len(closes) < emaWarmUp(period) {
		return math.NaN()
	}
	return latest(talib.Ema(closes, period))
}
