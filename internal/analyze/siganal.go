package analyze

import "github.com/Alias1177/QuotexSignals/models"

// Factor is one rule's contribution to the directional score
type Factor struct {
	Name   string
	Points int
	Note   string
}

// Scorer turns indicator readings into a signed directional score.
// Every rule contributes on every call; no rule short-circuits another.
type Scorer struct {
	Oversold   float64
	Overbought float64
}

// NewScorer takes the RSI thresholds from the indicator config
func NewScorer(cfg models.IndicatorConfig) Scorer {
	return Scorer{
		Oversold:   cfg.RSIOversold,
		Overbought: cfg.RSIOverbought,
	}
}

// Factors returns the per-rule contributions in rule order
func (s Scorer) Factors(r models.IndicatorReadings, latestClose float64) []Factor {
	factors := make([]Factor, 0, 3)

	// RSI
	switch {
	case r.RSI < s.Oversold:
		factors = append(factors, Factor{Name: "RSI", Points: 2, Note: "oversold"})
	case r.RSI > s.Overbought:
		factors = append(factors, Factor{Name: "RSI", Points: -2, Note: "overbought"})
	default:
		factors = append(factors, Factor{Name: "RSI", Points: 0, Note: "neutral"})
	}

	// MACD always votes
	if r.MACD.Main > r.MACD.Signal {
		factors = append(factors, Factor{Name: "MACD", Points: 1, Note: "main above signal"})
	} else {
		factors = append(factors, Factor{Name: "MACD", Points: -1, Note: "main at or below signal"})
	}

	// Bollinger Bands
	switch {
	case latestClose < r.Bollinger.Lower:
		factors = append(factors, Factor{Name: "Bollinger", Points: 1, Note: "close below lower band"})
	case latestClose > r.Bollinger.Upper:
		factors = append(factors, Factor{Name: "Bollinger", Points: -1, Note: "close above upper band"})
	default:
		factors = append(factors, Factor{Name: "Bollinger", Points: 0, Note: "close within bands"})
	}

	return factors
}

// Score sums the rule contributions and classifies the result
func (s Scorer) Score(r models.IndicatorReadings, latestClose float64) (int, models.Direction) {
	score := 0
	for _, f := range s.Factors(r, latestClose) {
		score += f.Points
	}
	return score, Classify(score)
}
