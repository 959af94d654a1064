package models

import (
	"math"
	"time"
)

// Bar represents a single OHLCV price candle
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// PriceSeries is an ascending-by-time sequence of bars, newest bar last
type PriceSeries []Bar

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

// Last returns the newest bar. It panics on an empty series.
func (s PriceSeries) Last() Bar {
	return s[len(s)-1]
}

// Direction is the directional call of a signal
type Direction string

const (
	DirectionBuy     Direction = "BUY"
	DirectionSell    Direction = "SELL"
	DirectionNeutral Direction = "NEUTRAL"
)

// EMA cross labels, display only
const (
	CrossGolden = "GOLDEN"
	CrossDeath  = "DEATH"
)

// MACDReading holds the latest MACD main and signal line values
type MACDReading struct {
	Main   float64 `json:"main"`
	Signal float64 `json:"signal"`
}

// BollingerReading holds the latest band values
type BollingerReading struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// StochasticReading holds the latest slow %K and %D values
type StochasticReading struct {
	K float64 `json:"k"`
	D float64 `json:"d"`
}

// EMAReading holds the latest short and medium EMA values
type EMAReading struct {
	Short  float64 `json:"short"`
	Medium float64 `json:"medium"`
}

// IndicatorReadings holds the latest value of every computed indicator
type IndicatorReadings struct {
	RSI        float64           `json:"rsi"`
	MACD       MACDReading       `json:"macd"`
	Bollinger  BollingerReading  `json:"bollinger"`
	Stochastic StochasticReading `json:"stochastic"`
	EMA        EMAReading        `json:"ema"`
	ADX        float64           `json:"adx"`
	ATR        float64           `json:"atr"`
	CCI        float64           `json:"cci"`
	OBV        float64           `json:"obv"`
	Ichimoku   float64           `json:"ichimoku_conversion"`
}

// EMACross labels the short/medium EMA relation
func (r IndicatorReadings) EMACross() string {
	if r.EMA.Short > r.EMA.Medium {
		return CrossGolden
	}
	return CrossDeath
}

// Fields lists every reading under a stable name, in display order
func (r IndicatorReadings) Fields() []NamedValue {
	return []NamedValue{
		{"RSI", r.RSI},
		{"MACD", r.MACD.Main},
		{"MACD_Signal", r.MACD.Signal},
		{"BB_Upper", r.Bollinger.Upper},
		{"BB_Middle", r.Bollinger.Middle},
		{"BB_Lower", r.Bollinger.Lower},
		{"Stoch_K", r.Stochastic.K},
		{"Stoch_D", r.Stochastic.D},
		{"EMA_Short", r.EMA.Short},
		{"EMA_Medium", r.EMA.Medium},
		{"ADX", r.ADX},
		{"ATR", r.ATR},
		{"CCI", r.CCI},
		{"OBV", r.OBV},
		{"Ichimoku", r.Ichimoku},
	}
}

// NamedValue is a single labelled number
type NamedValue struct {
	Name  string
	Value float64
}

// Signal is the final, immutable output of one analysis request
type Signal struct {
	Symbol     string            `json:"symbol"`
	Time       time.Time         `json:"time"`
	Direction  Direction         `json:"direction"`
	Confidence int               `json:"confidence"`
	Score      int               `json:"score"`
	EntryPrice float64           `json:"entry_price"`
	StopLoss   float64           `json:"stop_loss"`
	TakeProfit float64           `json:"take_profit"`
	Indicators IndicatorReadings `json:"indicators"`
}

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WatchEntry is a chat subscribed to scheduled signals for one symbol
type WatchEntry struct {
	ChatID    int64     `json:"chat_id"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetCategory groups the symbols offered by the front end
type AssetCategory struct {
	Name    string   `yaml:"name" json:"name"`
	Symbols []string `yaml:"symbols" json:"symbols"`
}
