package calculate

import (
	"math"

	"github.com/Alias1177/QuotexSignals/models"
	"github.com/markcheno/go-talib"
)

func stochasticWarmUp(kPeriod, slowing, dPeriod int) int {
	return kPeriod + slowing + dPeriod - 2
}

// calculateStochastic returns the slow %K and its %D, both smoothed with an SMA
func calculateStochastic(highs, lows, closes []float64, kPeriod, slowing, dPeriod int) models.StochasticReading {
	if len(closes) < stochasticWarmUp(kPeriod, slowing, dPeriod) {
		return models.StochasticReading{K: math.NaN(), D: math.NaN()}
	}

	k, d := talib.Stoch(highs, lows, closes, kPeriod, slowing, talib.SMA, dPeriod, talib.SMA)
	return models.StochasticReading{
		K: latest(k),
		D: latest(d),
	}
}
