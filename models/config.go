package models

import "fmt"

// IndicatorConfig содержит параметры индикаторов и пороги RSI
type IndicatorConfig struct {
	RSIPeriod        int     `yaml:"rsi_period"`
	RSIOverbought    float64 `yaml:"rsi_overbought"`
	RSIOversold      float64 `yaml:"rsi_oversold"`
	MACDFastPeriod   int     `yaml:"macd_fast_period"`
	MACDSlowPeriod   int     `yaml:"macd_slow_period"`
	MACDSignalPeriod int     `yaml:"macd_signal_period"`
	BBPeriod         int     `yaml:"bb_period"`
	BBStdDev         float64 `yaml:"bb_std_dev"`
	StochKPeriod     int     `yaml:"stoch_k_period"`
	StochSlowing     int     `yaml:"stoch_slowing"`
	StochDPeriod     int     `yaml:"stoch_d_period"`
	EMAShortPeriod   int     `yaml:"ema_short_period"`
	EMAMediumPeriod  int     `yaml:"ema_medium_period"`
	ADXPeriod        int     `yaml:"adx_period"`
	ATRPeriod        int     `yaml:"atr_period"`
	CCIPeriod        int     `yaml:"cci_period"`
	IchimokuWindow   int     `yaml:"ichimoku_window"`
}

// DefaultIndicatorConfig returns the classical parameter set
func DefaultIndicatorConfig() IndicatorConfig {
	return IndicatorConfig{
		RSIPeriod:        14,
		RSIOverbought:    70,
		RSIOversold:      30,
		MACDFastPeriod:   12,
		MACDSlowPeriod:   26,
		MACDSignalPeriod: 9,
		BBPeriod:         20,
		BBStdDev:         2.0,
		StochKPeriod:     14,
		StochSlowing:     3,
		StochDPeriod:     3,
		EMAShortPeriod:   9,
		EMAMediumPeriod:  21,
		ADXPeriod:        14,
		ATRPeriod:        14,
		CCIPeriod:        20,
		IchimokuWindow:   8,
	}
}

// Validate проверяет согласованность параметров
func (c IndicatorConfig) Validate() error {
	periods := []struct {
		name  string
		value int
		min   int
	}{
		{"rsi_period", c.RSIPeriod, 2},
		{"macd_fast_period", c.MACDFastPeriod, 2},
		{"macd_slow_period", c.MACDSlowPeriod, 2},
		{"macd_signal_period", c.MACDSignalPeriod, 2},
		{"bb_period", c.BBPeriod, 2},
		{"stoch_k_period", c.StochKPeriod, 2},
		{"stoch_slowing", c.StochSlowing, 1},
		{"stoch_d_period", c.StochDPeriod, 1},
		{"ema_short_period", c.EMAShortPeriod, 2},
		{"ema_medium_period", c.EMAMediumPeriod, 2},
		{"adx_period", c.ADXPeriod, 2},
		{"atr_period", c.ATRPeriod, 1},
		{"cci_period", c.CCIPeriod, 2},
		{"ichimoku_window", c.IchimokuWindow, 2},
	}
	for _, p := range periods {
		if p.value < p.min {
			return fmt.Errorf("%s must be >= %d, got %d", p.name, p.min, p.value)
		}
	}

	if c.MACDFastPeriod >= c.MACDSlowPeriod {
		return fmt.Errorf("macd_fast_period (%d) must be less than macd_slow_period (%d)", c.MACDFastPeriod, c.MACDSlowPeriod)
	}
	if c.BBStdDev <= 0 {
		return fmt.Errorf("bb_std_dev must be positive, got %v", c.BBStdDev)
	}
	if c.RSIOversold >= c.RSIOverbought {
		return fmt.Errorf("rsi_oversold (%v) must be below rsi_overbought (%v)", c.RSIOversold, c.RSIOverbought)
	}
	if c.RSIOversold < 0 || c.RSIOverbought > 100 {
		return fmt.Errorf("rsi thresholds must lie within [0, 100]")
	}
	return nil
}

// RequiredBars is the aggregate lookback: the longest single indicator
// period, with one extra bar for indicators that work on bar-to-bar changes.
func (c IndicatorConfig) RequiredBars() int {
	need := 0
	for _, n := range []int{
		c.RSIPeriod + 1,
		c.MACDSlowPeriod,
		c.BBPeriod,
		c.StochKPeriod,
		c.EMAMediumPeriod,
		c.ADXPeriod + 1,
		c.ATRPeriod + 1,
		c.CCIPeriod,
		c.IchimokuWindow + 1,
	} {
		if n > need {
			need = n
		}
	}
	return need
}
