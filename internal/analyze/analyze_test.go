package analyze

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/calculate"
	"github.com/Alias1177/QuotexSignals/internal/trading/risk"
	"github.com/Alias1177/QuotexSignals/models"
)

func TestScorerScore(t *testing.T) {
	tests := []struct {
		name           string
		rsi            float64
		macdMain       float64
		macdSignal     float64
		close          float64
		wantScore      int
		wantDirection  models.Direction
		wantConfidence int
	}{
		{
			name: "Перепроданность, бычий MACD, цена под нижней полосой",
			rsi: 25, macdMain: 1.2, macdSignal: 0.8, close: 89,
			wantScore: 4, wantDirection: models.DirectionBuy, wantConfidence: 95,
		},
		{
			name: "Перекупленность, медвежий MACD, цена над верхней полосой",
			rsi: 75, macdMain: 0.5, macdSignal: 0.9, close: 111,
			wantScore: -4, wantDirection: models.DirectionSell, wantConfidence: 95,
		},
		{
			name: "Нейтральный RSI, медвежий MACD, цена внутри полос",
			rsi: 50, macdMain: 0.1, macdSignal: 0.2, close: 100,
			wantScore: -1, wantDirection: models.DirectionNeutral, wantConfidence: 80,
		},
		{
			name: "Равные линии MACD голосуют вниз",
			rsi: 50, macdMain: 0.3, macdSignal: 0.3, close: 100,
			wantScore: -1, wantDirection: models.DirectionNeutral, wantConfidence: 80,
		},
		{
			name: "Перепроданность при медвежьем MACD",
			rsi: 20, macdMain: -0.5, macdSignal: 0.1, close: 100,
			wantScore: 1, wantDirection: models.DirectionNeutral, wantConfidence: 80,
		},
		{
			name: "Пороговые значения RSI не считаются",
			rsi: 30, macdMain: 1, macdSignal: 0, close: 89,
			wantScore: 2, wantDirection: models.DirectionBuy, wantConfidence: 90,
		},
	}

	scorer := NewScorer(models.DefaultIndicatorConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := readings(tt.rsi, tt.macdMain, tt.macdSignal)

			score, direction := scorer.Score(r, tt.close)
			if score != tt.wantScore {
				t.Errorf("Score() score = %v, want %v", score, tt.wantScore)
			}
			if direction != tt.wantDirection {
				t.Errorf("Score() direction = %v, want %v", direction, tt.wantDirection)
			}
			if got := Confidence(score); got != tt.wantConfidence {
				t.Errorf("Confidence(%d) = %v, want %v", score, got, tt.wantConfidence)
			}
		})
	}
}

func TestScorerFactorsMatchScore(t *testing.T) {
	scorer := NewScorer(models.DefaultIndicatorConfig())
	r := readings(25, 1, 0)

	factors := scorer.Factors(r, 89)
	if len(factors) != 3 {
		t.Fatalf("Factors() returned %d factors, want 3", len(factors))
	}

	wantPoints := []int{2, 1, 1}
	for i, f := range factors {
		if f.Points != wantPoints[i] {
			t.Errorf("Factors()[%d] (%s) = %d, want %d", i, f.Name, f.Points, wantPoints[i])
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score int
		want  models.Direction
	}{
		{-5, models.DirectionSell},
		{-2, models.DirectionSell},
		{-1, models.DirectionNeutral},
		{0, models.DirectionNeutral},
		{1, models.DirectionNeutral},
		{2, models.DirectionBuy},
		{7, models.DirectionBuy},
	}
	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestConfidenceBounds(t *testing.T) {
	want := map[int]int{0: 70, 1: 80, -1: 80, 2: 90, -2: 90, 3: 95, -4: 95}
	for score, w := range want {
		if got := Confidence(score); got != w {
			t.Errorf("Confidence(%d) = %d, want %d", score, got, w)
		}
	}

	for score := -1000; score <= 1000; score++ {
		c := Confidence(score)
		if c < 70 || c > 95 {
			t.Fatalf("Confidence(%d) = %d, want within [70, 95]", score, c)
		}
	}
}

func TestAssemble(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := readings(50, 0.1, 0.2)

	sig, err := Assemble("BTC-USD", r, -1, models.DirectionNeutral, 80, 100, 101, 98, ts)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	want := models.Signal{
		Symbol:     "BTC-USD",
		Time:       ts,
		Direction:  models.DirectionNeutral,
		Confidence: 80,
		Score:      -1,
		EntryPrice: 100,
		StopLoss:   101,
		TakeProfit: 98,
		Indicators: r,
	}
	if !reflect.DeepEqual(sig, want) {
		t.Errorf("Assemble() = %+v, want %+v", sig, want)
	}
}

func TestAssembleRejectsNonFinite(t *testing.T) {
	ts := time.Now()

	tests := []struct {
		name      string
		readings  models.IndicatorReadings
		entry     float64
		stop      float64
		target    float64
		wantField string
	}{
		{"NaN entry", readings(50, 0, 0), math.NaN(), 1, 1, "entry"},
		{"Inf stop", readings(50, 0, 0), 1, math.Inf(1), 1, "stop_loss"},
		{"NaN target", readings(50, 0, 0), 1, 1, math.NaN(), "take_profit"},
		{"NaN ADX", func() models.IndicatorReadings {
			r := readings(50, 0, 0)
			r.ADX = math.NaN()
			return r
		}(), 1, 1, 1, "ADX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := Assemble("ETH-USD", tt.readings, 0, models.DirectionNeutral, 70, tt.entry, tt.stop, tt.target, ts)

			var assembly *AssemblyError
			if !errors.As(err, &assembly) {
				t.Fatalf("Assemble() error = %v, want AssemblyError", err)
			}
			if assembly.Field != tt.wantField {
				t.Errorf("AssemblyError.Field = %q, want %q", assembly.Field, tt.wantField)
			}
			if !reflect.DeepEqual(sig, models.Signal{}) {
				t.Errorf("Assemble() returned a partial signal: %+v", sig)
			}
		})
	}
}

func TestGeneratorGenerate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	gen := mustGenerator(t, WithClock(func() time.Time { return ts }))

	series := generateTestBars(60, func(i int) models.Bar {
		c := 100 + float64(i)
		return models.Bar{Open: c - 0.5, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 10}
	})

	sig, err := gen.Generate("SOL-USD", series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// RSI 100 (-2), MACD main equal to its signal, close 159 inside bands
	if sig.Symbol != "SOL-USD" || !sig.Time.Equal(ts) {
		t.Errorf("Generate() symbol/time = %s/%v, want SOL-USD/%v", sig.Symbol, sig.Time, ts)
	}
	if sig.EntryPrice != 159 {
		t.Errorf("EntryPrice = %v, want 159", sig.EntryPrice)
	}
	if sig.Score > -1 {
		t.Errorf("Score = %d, want <= -1 for an overbought series", sig.Score)
	}
	if sig.Direction == models.DirectionBuy {
		t.Errorf("Direction = %v, want NEUTRAL or SELL", sig.Direction)
	}
	// non-BUY signals carry the short-side levels
	if math.Abs(sig.StopLoss-159*1.01) > 1e-9 || math.Abs(sig.TakeProfit-159*0.98) > 1e-9 {
		t.Errorf("levels = (%v, %v), want (%v, %v)", sig.StopLoss, sig.TakeProfit, 159*1.01, 159*0.98)
	}
	if sig.Confidence != Confidence(sig.Score) {
		t.Errorf("Confidence = %d, want %d", sig.Confidence, Confidence(sig.Score))
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	gen := mustGenerator(t, WithClock(func() time.Time { return ts }))
	series := generateTestBars(90, oscillatingBar)

	first, err := gen.Generate("EURUSD=X", series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := gen.Generate("EURUSD=X", series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Generate() not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestGeneratorInsufficientData(t *testing.T) {
	gen := mustGenerator(t)

	sig, err := gen.Generate("BTC-USD", generateTestBars(10, oscillatingBar))

	var insufficient *calculate.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Generate() error = %v, want InsufficientDataError", err)
	}
	if !reflect.DeepEqual(sig, models.Signal{}) {
		t.Errorf("Generate() returned a partial signal: %+v", sig)
	}
}

func TestServiceAnalyze(t *testing.T) {
	fetchErr := errors.New("upstream down")

	tests := []struct {
		name     string
		source   fakeSource
		wantKind string
		wantErr  bool
	}{
		{"успешный анализ", fakeSource{series: generateTestBars(90, oscillatingBar)}, "", false},
		{"ошибка источника", fakeSource{err: fetchErr}, KindFetch, true},
		{"короткая серия", fakeSource{series: generateTestBars(12, oscillatingBar)}, KindInsufficientData, true},
		{"серия короче прогрева MACD", fakeSource{series: generateTestBars(30, oscillatingBar)}, KindUndefinedIndicator, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &countingRecorder{}
			svc := NewService(tt.source, mustGenerator(t), rec, time.Second)

			sig, err := svc.Analyze(context.Background(), "AAPL")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Analyze() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if sig.Symbol != "AAPL" || rec.signals != 1 {
					t.Errorf("Analyze() = %+v, recorded %d signals", sig, rec.signals)
				}
				return
			}
			if got := ErrorKind(err); got != tt.wantKind {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.wantKind)
			}
			if len(rec.errors) != 1 || rec.errors[0] != tt.wantKind {
				t.Errorf("recorded errors = %v, want [%s]", rec.errors, tt.wantKind)
			}
			if tt.wantKind == KindFetch && !errors.Is(err, fetchErr) {
				t.Errorf("Analyze() error = %v, want it to wrap %v", err, fetchErr)
			}
		})
	}
}

func TestServiceAnalyzeMany(t *testing.T) {
	svc := NewService(fakeSource{series: generateTestBars(90, oscillatingBar)}, mustGenerator(t), nil, time.Second)
	symbols := []string{"BTC-USD", "ETH-USD", "GC=F", "TSLA"}

	results := svc.AnalyzeMany(context.Background(), symbols)
	if len(results) != len(symbols) {
		t.Fatalf("AnalyzeMany() returned %d results, want %d", len(results), len(symbols))
	}
	for i, res := range results {
		if res.Err != nil {
			t.Errorf("AnalyzeMany()[%d] error = %v", i, res.Err)
		}
		if res.Symbol != symbols[i] || res.Signal.Symbol != symbols[i] {
			t.Errorf("AnalyzeMany()[%d] symbol = %s/%s, want %s", i, res.Symbol, res.Signal.Symbol, symbols[i])
		}
	}
}

type fakeSource struct {
	series models.PriceSeries
	err    error
}

func (f fakeSource) GetSeries(_ context.Context, _ string) (models.PriceSeries, error) {
	return f.series, f.err
}

type countingRecorder struct {
	signals int
	errors  []string
}

func (c *countingRecorder) ObserveSignal(_ string, _ models.Direction, _ time.Duration) { c.signals++ }
func (c *countingRecorder) ObserveError(kind string)                                   { c.errors = append(c.errors, kind) }
func (c *countingRecorder) ObserveCache(_ bool)                                         {}
func (c *countingRecorder) ObserveDelivery(_ error)                                     {}

func readings(rsi, macdMain, macdSignal float64) models.IndicatorReadings {
	return models.IndicatorReadings{
		RSI:        rsi,
		MACD:       models.MACDReading{Main: macdMain, Signal: macdSignal},
		Bollinger:  models.BollingerReading{Upper: 110, Middle: 100, Lower: 90},
		Stochastic: models.StochasticReading{K: 50, D: 50},
		EMA:        models.EMAReading{Short: 100, Medium: 100},
		ADX:        20,
		ATR:        1.5,
		CCI:        0,
		OBV:        1000,
		Ichimoku:   100,
	}
}

func mustGenerator(t *testing.T, opts ...GeneratorOption) *Generator {
	t.Helper()
	gen, err := NewGenerator(models.DefaultIndicatorConfig(), risk.NewCalculator(), opts...)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return gen
}

func oscillatingBar(i int) models.Bar {
	c := 100 + 5*math.Sin(float64(i)/5) + float64(i)*0.1
	return models.Bar{
		Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		Open:   c - 0.3,
		High:   c + 1,
		Low:    c - 1,
		Close:  c,
		Volume: float64(1000 + i*10),
	}
}

func generateTestBars(n int, generator func(int) models.Bar) models.PriceSeries {
	bars := make(models.PriceSeries, n)
	for i := 0; i < n; i++ {
		bars[i] = generator(i)
	}
	return bars
}
