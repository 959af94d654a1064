package analyze

import (
	"fmt"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
)

// AssemblyError reports a non-finite field found while building a Signal
type AssemblyError struct {
	Field string
	Value float64
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("cannot assemble signal: %s is %v", e.Field, e.Value)
}

// Assemble composes the final Signal. It performs no computation and
// never returns a partially valid record.
func Assemble(
	symbol string,
	readings models.IndicatorReadings,
	score int,
	direction models.Direction,
	confidence int,
	entry, stopLoss, takeProfit float64,
	ts time.Time,
) (models.Signal, error) {
	prices := []models.NamedValue{
		{Name: "entry", Value: entry},
		{Name: "stop_loss", Value: stopLoss},
		{Name: "take_profit", Value: takeProfit},
	}
	for _, f := range append(prices, readings.Fields()...) {
		if !models.IsFinite(f.Value) {
			return models.Signal{}, &AssemblyError{Field: f.Name, Value: f.Value}
		}
	}

	return models.Signal{
		Symbol:     symbol,
		Time:       ts,
		Direction:  direction,
		Confidence: confidence,
		Score:      score,
		EntryPrice: entry,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		Indicators: readings,
	}, nil
}
