package calculate

import (
	"math"

	"github.com/markcheno/go-talib"
)

const obvWarmUp = 1

// calculateOBV accumulates volume by the direction of each close-to-close move
func calculateOBV(closes, volumes []float64) float64 {
	if len(closes) < obvWarmUp {
		return math.NaN()
	}
	return latest(talib.Obv(closes, volumes))
}
