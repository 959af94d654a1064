package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TimeLayout renders timestamps with millisecond precision
const TimeLayout = "2006-01-02 15:04:05.000"

// Formatter renders signals and listings as Telegram Markdown
type Formatter struct {
	Location   *time.Location
	Oversold   float64
	Overbought float64
}

// NewFormatter takes the RSI labels from cfg and renders times in loc
func NewFormatter(loc *time.Location, cfg models.IndicatorConfig) Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{
		Location:   loc,
		Oversold:   cfg.RSIOversold,
		Overbought: cfg.RSIOverbought,
	}
}

// FormatTime renders t in the formatter's zone
func (f Formatter) FormatTime(t time.Time) string {
	return t.In(f.Location).Format(TimeLayout)
}

func directionEmoji(d models.Direction) string {
	switch d {
	case models.DirectionBuy:
		return "🚀"
	case models.DirectionSell:
		return "🔻"
	default:
		return "➖"
	}
}

// SuggestedAction maps confidence to the advice line
func SuggestedAction(confidence int) string {
	switch {
	case confidence > 85:
		return "Strong entry"
	case confidence < 75:
		return "Caution advised"
	default:
		return "Moderate confidence"
	}
}

func (f Formatter) rsiLabel(rsi float64) string {
	switch {
	case rsi < f.Oversold:
		return " (Oversold)"
	case rsi > f.Overbought:
		return " (Overbought)"
	default:
		return ""
	}
}

func emaCrossLabel(r models.IndicatorReadings) string {
	if r.EMACross() == models.CrossGolden {
		return "Golden (Bullish)"
	}
	return "Death (Bearish)"
}

// FormatSignal renders a signal message
func (f Formatter) FormatSignal(sig models.Signal) string {
	r := sig.Indicators
	emoji := directionEmoji(sig.Direction)

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s Signal* %s\n", emoji, sig.Symbol, emoji)
	fmt.Fprintf(&b, "⏰ *Entry Time:* `%s`\n", f.FormatTime(sig.Time))
	fmt.Fprintf(&b, "📊 *Direction:* %s (%d%% confidence)\n\n", sig.Direction, sig.Confidence)

	b.WriteString("📈 *Price Levels:*\n")
	fmt.Fprintf(&b, "- Entry: `%.5f`\n", sig.EntryPrice)
	fmt.Fprintf(&b, "- Stop Loss: `%.5f`\n", sig.StopLoss)
	fmt.Fprintf(&b, "- Take Profit: `%.5f`\n\n", sig.TakeProfit)

	b.WriteString("📊 *Technical Indicators:*\n")
	fmt.Fprintf(&b, "- RSI: `%.2f`%s\n", r.RSI, f.rsiLabel(r.RSI))
	fmt.Fprintf(&b, "- MACD: `%.4f`\n", r.MACD.Main)
	fmt.Fprintf(&b, "- BBands: `%.2f | %.2f`\n", r.Bollinger.Lower, r.Bollinger.Upper)
	fmt.Fprintf(&b, "- Stoch: K=`%.1f`, D=`%.1f`\n", r.Stochastic.K, r.Stochastic.D)
	fmt.Fprintf(&b, "- EMA Cross: %s\n", emaCrossLabel(r))
	fmt.Fprintf(&b, "- ADX: `%.1f` | ATR: `%.5f` | CCI: `%.1f`\n", r.ADX, r.ATR, r.CCI)
	fmt.Fprintf(&b, "- OBV: `%.0f` | Ichimoku: `%.5f`\n\n", r.OBV, r.Ichimoku)

	fmt.Fprintf(&b, "💡 *Suggested Action:* %s\n", SuggestedAction(sig.Confidence))
	return b.String()
}

// FormatAssets renders the asset catalog
func FormatAssets(catalog Catalog) string {
	var b strings.Builder
	b.WriteString("📊 *Supported Assets*\n\n")
	for _, category := range catalog {
		fmt.Fprintf(&b, "*%s:*\n", category.Name)
		for _, s := range category.Symbols {
			fmt.Fprintf(&b, "• %s\n", s)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatWatchlist renders a chat's scheduled symbols
func FormatWatchlist(entries []models.WatchEntry) string {
	if len(entries) == 0 {
		return "Your watchlist is empty. Use /watch [asset] to add one."
	}
	var b strings.Builder
	b.WriteString("👀 *Watchlist*\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "• %s\n", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, e.Symbol))
	}
	return b.String()
}

const welcomeText = "🚀 *Quotex Pro Signals Bot*\n\n" +
	"I provide high-accuracy trading signals with:\n" +
	"• 10+ professional indicators\n" +
	"• Precise local timing\n" +
	"• Risk management levels\n\n" +
	"Commands:\n" +
	"/signal [asset] - Get trading signal\n" +
	"/assets - List supported assets\n" +
	"/time - Check server time\n" +
	"/watch [asset] - Receive scheduled signals\n" +
	"/unwatch [asset] - Stop scheduled signals\n" +
	"/watchlist - Show scheduled assets"
