package calculate

import (
	"math"

	"github.com/Alias1177/QuotexSignals/models"
	"github.com/markcheno/go-talib"
)

func bollingerWarmUp(period int) int {
	return period
}

// calculateBollingerBands calculates Bollinger Bands around an SMA
func calculateBollingerBands(closes []float64, period int, stdDev float64) models.BollingerReading {
	if len(closes) < bollingerWarmUp(period) {
		nan := math.NaN()
		return models.BollingerReading{Upper: nan, Middle: nan, Lower: nan}
	}

	upper, middle, lower := talib.BBands(closes, period, stdDev, stdDev, talib.SMA)
	return models.BollingerReading{
		Upper:  latest(upper),
		Middle: latest(middle),
		Lower:  latest(lower),
	}
}
