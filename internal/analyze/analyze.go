package analyze

import "github.com/Alias1177/QuotexSignals/models"

const (
	minConfidence = 70
	maxConfidence = 95
)

// Classify maps a score to a direction; -1, 0 and 1 stay NEUTRAL
func Classify(score int) models.Direction {
	switch {
	case score > 1:
		return models.DirectionBuy
	case score < -1:
		return models.DirectionSell
	default:
		return models.DirectionNeutral
	}
}

// Confidence is 70 + 10 per score point in either direction, capped at 95.
// It is defined for NEUTRAL scores too.
func Confidence(score int) int {
	if score < 0 {
		score = -score
	}
	if score > (maxConfidence-minConfidence)/10 {
		return maxConfidence
	}
	return minConfidence + score*10
}
