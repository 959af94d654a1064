package calculate

import (
	"math"

	"github.com/markcheno/go-talib"
)

// The conversion line looks at the window of bars before the newest one
func ichimokuWarmUp(window int) int {
	return window + 1
}

// calculateIchimokuConversion returns (highest high + lowest low) / 2 over
// the window bars preceding the newest bar.
func calculateIchimokuConversion(highs, lows []float64, window int) float64 {
	if len(highs) < ichimokuWarmUp(window) {
		return math.NaN()
	}

	prior := len(highs) - 1
	highest := latest(talib.Max(highs[:prior], window))
	lowest := latest(talib.Min(lows[:prior], window))
	return (highest + lowest) / 2
}
