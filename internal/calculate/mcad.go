package calculate

import (
	"math"

	"github.com/Alias1177/QuotexSignals/models"
	"github.com/markcheno/go-talib"
)

// The signal line is an EMA over the MACD line, which itself starts after
// the slow EMA warms up.
func macdWarmUp(slowPeriod, signalPeriod int) int {
	return slowPeriod + signalPeriod - 1
}

// calculateMACD builds the MACD line from both EMAs seeded on the same bar,
// the slow EMA's first value, and runs the signal EMA over the defined part
// of that line only. fastPeriod must be below slowPeriod.
func calculateMACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) models.MACDReading {
	if len(closes) < macdWarmUp(slowPeriod, signalPeriod) {
		return models.MACDReading{Main: math.NaN(), Signal: math.NaN()}
	}

	offset := slowPeriod - fastPeriod
	slowEMA := talib.Ema(closes, slowPeriod)
	fastEMA := talib.Ema(closes[offset:], fastPeriod)

	line := make([]float64, 0, len(closes)-slowPeriod+1)
	for i := slowPeriod - 1; i < len(closes); i++ {
		line = append(line, fastEMA[i-offset]-slowEMA[i])
	}

	signal := talib.Ema(line, signalPeriod)
	return models.MACDReading{
		Main:   latest(line),
		Signal: latest(signal),
	}
}
