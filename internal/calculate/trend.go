package calculate

import (
	"math"

	"github.com/markcheno/go-talib"
)

// ADX smooths DX, which is already smoothed over the period, so it needs
// twice the period before the first value.
func adxWarmUp(period int) int {
	return 2 * period
}

func atrWarmUp(period int) int {
	return period + 1
}

func cciWarmUp(period int) int {
	return period
}

func calculateADX(highs, lows, closes []float64, period int) float64 {
	if len(closes) < adxWarmUp(period) {
		return math.NaN()
	}
	return latest(talib.Adx(highs, lows, closes, period))
}

func calculateATR(highs, lows, closes []float64, period int) float64 {
	if len(closes) < atrWarmUp(period) {
		return math.NaN()
	}
	return latest(talib.Atr(highs, lows, closes, period))
}

func calculateCCI(highs, lows, closes []float64, period int) float64 {
	if len(closes) < cciWarmUp(period) {
		return math.NaN()
	}
	return latest(talib.Cci(highs, lows, closes, period))
}
