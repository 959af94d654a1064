package analyze

import (
	"time"

	"github.com/Alias1177/QuotexSignals/internal/calculate"
	"github.com/Alias1177/QuotexSignals/internal/trading/risk"
	"github.com/Alias1177/QuotexSignals/models"
)

// Generator runs the full pipeline for one price series:
// indicators, score, confidence, risk levels and assembly.
type Generator struct {
	engine *calculate.Engine
	scorer Scorer
	risk   risk.Calculator
	now    func() time.Time
}

// GeneratorOption customises a Generator
type GeneratorOption func(*Generator)

// WithClock replaces the capture clock, mostly for tests
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator builds the pipeline for cfg
func NewGenerator(cfg models.IndicatorConfig, levels risk.Calculator, opts ...GeneratorOption) (*Generator, error) {
	engine, err := calculate.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		engine: engine,
		scorer: NewScorer(cfg),
		risk:   levels,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate produces a Signal for symbol. Entry is the latest close.
// Core errors are returned unwrapped so callers can match them with errors.As.
func (g *Generator) Generate(symbol string, series models.PriceSeries) (models.Signal, error) {
	readings, err := g.engine.Compute(series)
	if err != nil {
		return models.Signal{}, err
	}

	entry := series.Last().Close
	score, direction := g.scorer.Score(readings, entry)
	confidence := Confidence(score)
	stopLoss, takeProfit := g.risk.Levels(entry, direction)

	return Assemble(symbol, readings, score, direction, confidence, entry, stopLoss, takeProfit, g.now())
}

// Factors explains the score of a generated signal
func (g *Generator) Factors(sig models.Signal) []Factor {
	return g.scorer.Factors(sig.Indicators, sig.EntryPrice)
}

// RequiredBars is the minimum series length the pipeline accepts
func (g *Generator) RequiredBars() int {
	return g.engine.Config().RequiredBars()
}
