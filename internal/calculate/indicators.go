package calculate

import (
	"fmt"
	"math"

	"github.com/Alias1177/QuotexSignals/models"
)

// Engine computes the fixed indicator battery for one price series.
// It holds only its configuration and is safe for concurrent use.
type Engine struct {
	cfg models.IndicatorConfig
}

// NewEngine validates cfg and returns an engine bound to it
func NewEngine(cfg models.IndicatorConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid indicator config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the parameters the engine was built with
func (e *Engine) Config() models.IndicatorConfig {
	return e.cfg
}

// Compute calculates the latest value of every indicator
func (e *Engine) Compute(series models.PriceSeries) (models.IndicatorReadings, error) {
	cfg := e.cfg
	n := len(series)

	need := cfg.RequiredBars()
	if n < need {
		return models.IndicatorReadings{}, &InsufficientDataError{Have: n, Need: need}
	}
	for _, bar := range series {
		if !finiteBar(bar) {
			return models.IndicatorReadings{}, &UndefinedIndicatorError{Indicator: "price", Have: n, Need: need}
		}
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	var r models.IndicatorReadings

	r.RSI = calculateRSI(closes, cfg.RSIPeriod)
	r.MACD = calculateMACD(closes, cfg.MACDFastPeriod, cfg.MACDSlowPeriod, cfg.MACDSignalPeriod)
	r.Bollinger = calculateBollingerBands(closes, cfg.BBPeriod, cfg.BBStdDev)
	r.Stochastic = calculateStochastic(highs, lows, closes, cfg.StochKPeriod, cfg.StochSlowing, cfg.StochDPeriod)
	r.EMA = models.EMAReading{
		Short:  calculateEMA(closes, cfg.EMAShortPeriod),
		Medium: calculateEMA(closes, cfg.EMAMediumPeriod),
	}
	r.ADX = calculateADX(highs, lows, closes, cfg.ADXPeriod)
	r.ATR = calculateATR(highs, lows, closes, cfg.ATRPeriod)
	r.CCI = calculateCCI(highs, lows, closes, cfg.CCIPeriod)
	r.OBV = calculateOBV(closes, volumes)
	r.Ichimoku = calculateIchimokuConversion(highs, lows, cfg.IchimokuWindow)

	if err := checkReadings(r, cfg, n); err != nil {
		return models.IndicatorReadings{}, err
	}
	return r, nil
}

// checkReadings rejects the first non-finite reading, in scoring order
func checkReadings(r models.IndicatorReadings, cfg models.IndicatorConfig, have int) error {
	checks := []struct {
		name   string
		values []float64
		warmUp int
	}{
		{"RSI", []float64{r.RSI}, rsiWarmUp(cfg.RSIPeriod)},
		{"MACD", []float64{r.MACD.Main, r.MACD.Signal}, macdWarmUp(cfg.MACDSlowPeriod, cfg.MACDSignalPeriod)},
		{"Bollinger", []float64{r.Bollinger.Upper, r.Bollinger.Middle, r.Bollinger.Lower}, bollingerWarmUp(cfg.BBPeriod)},
		{"Stochastic", []float64{r.Stochastic.K, r.Stochastic.D}, stochasticWarmUp(cfg.StochKPeriod, cfg.StochSlowing, cfg.StochDPeriod)},
		{"EMA", []float64{r.EMA.Short, r.EMA.Medium}, emaWarmUp(max(cfg.EMAShortPeriod, cfg.EMAMediumPeriod))},
		{"ADX", []float64{r.ADX}, adxWarmUp(cfg.ADXPeriod)},
		{"ATR", []float64{r.ATR}, atrWarmUp(cfg.ATRPeriod)},
		{"CCI", []float64{r.CCI}, cciWarmUp(cfg.CCIPeriod)},
		{"OBV", []float64{r.OBV}, obvWarmUp},
		{"Ichimoku", []float64{r.Ichimoku}, ichimokuWarmUp(cfg.IchimokuWindow)},
	}

	for _, c := range checks {
		for _, v := range c.values {
			if !models.IsFinite(v) {
				return &UndefinedIndicatorError{Indicator: c.name, Have: have, Need: c.warmUp}
			}
		}
	}
	return nil
}

func finiteBar(b models.Bar) bool {
	return models.IsFinite(b.Open) &&
		models.IsFinite(b.High) &&
		models.IsFinite(b.Low) &&
		models.IsFinite(b.Close) &&
		models.IsFinite(b.Volume)
}

// latest reads the newest value of an indicator output series.
// TA-Lib fills the warm-up slots with zeros, so callers must check the
// warm-up before relying on it.
func latest(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
