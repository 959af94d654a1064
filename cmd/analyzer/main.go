package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Alias1177/QuotexSignals/internal/analyze"
	"github.com/Alias1177/QuotexSignals/internal/app"
	"github.com/Alias1177/QuotexSignals/internal/config"
	"github.com/Alias1177/QuotexSignals/internal/metrics"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	symbolList string
	interval   string
	chartRange string
	format     string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Compute trading signals from the terminal",
		Long: `Analyzer fetches recent bars from Yahoo Finance and prints the same
signals the Telegram bot sends.

Examples:
  analyzer --symbols BTC-USD,ETH-USD
  analyzer --symbols EURUSD=X --interval 15m --range 1mo --verbose
  analyzer --format json`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", app.ConfigPath(), "config file path")
	rootCmd.Flags().StringVar(&symbolList, "symbols", "", "comma-separated symbols (default: every listed asset)")
	rootCmd.Flags().StringVar(&interval, "interval", "", "chart interval, e.g. 1m, 5m, 1h")
	rootCmd.Flags().StringVar(&chartRange, "range", "", "chart range, e.g. 1d, 5d, 1mo")
	rootCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "show scoring factors")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	app.SetupLogging(cfg.LogLevel)

	if cmd.Flags().Changed("interval") {
		cfg.MarketData.Interval = interval
	}
	if cmd.Flags().Changed("range") {
		cfg.MarketData.Range = chartRange
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	symbols := parseSymbols(symbolList, cfg.Assets)
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols to analyse")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewNoopRecorder()
	source, closeSource := app.SeriesSource(ctx, cfg, recorder)
	defer closeSource()

	service, err := app.Service(source, cfg, recorder)
	if err != nil {
		return fmt.Errorf("building signal service: %w", err)
	}

	log.Debug().Strs("symbols", symbols).Str("interval", cfg.MarketData.Interval).Msg("Analysing")
	results := service.AnalyzeMany(ctx, symbols)

	if format == "json" {
		return writeJSON(os.Stdout, results)
	}

	renderTable(os.Stdout, results)
	if verbose {
		printFactors(os.Stdout, results, service.Factors)
	}
	return nil
}

// parseSymbols splits the flag value, falling back to the asset catalog
func parseSymbols(list string, assets []models.AssetCategory) []string {
	var symbols []string
	if list != "" {
		for _, s := range strings.Split(list, ",") {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				symbols = append(symbols, s)
			}
		}
		return symbols
	}
	for _, category := range assets {
		symbols = append(symbols, category.Symbols...)
	}
	return symbols
}

func renderTable(w io.Writer, results []analyze.Result) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Symbol", "Direction", "Conf", "Score", "Entry", "Stop Loss", "Take Profit", "RSI", "Error"}),
	)

	for _, r := range results {
		if r.Err != nil {
			table.Append([]string{r.Symbol, "-", "-", "-", "-", "-", "-", "-", r.Err.Error()})
			continue
		}
		s := r.Signal
		table.Append([]string{
			s.Symbol,
			string(s.Direction),
			fmt.Sprintf("%d%%", s.Confidence),
			fmt.Sprintf("%+d", s.Score),
			fmt.Sprintf("%.5f", s.EntryPrice),
			fmt.Sprintf("%.5f", s.StopLoss),
			fmt.Sprintf("%.5f", s.TakeProfit),
			fmt.Sprintf("%.2f", s.Indicators.RSI),
			"",
		})
	}

	table.Render()
}

func printFactors(w io.Writer, results []analyze.Result, factors func(models.Signal) []analyze.Factor) {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		fmt.Fprintf(w, "\n%s factors:\n", r.Symbol)
		for _, f := range factors(r.Signal) {
			fmt.Fprintf(w, "- %s: %+d (%s)\n", f.Name, f.Points, f.Note)
		}
	}
}

type jsonResult struct {
	Symbol string         `json:"symbol"`
	Signal *models.Signal `json:"signal,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func writeJSON(w io.Writer, results []analyze.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		item := jsonResult{Symbol: r.Symbol}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else {
			sig := r.Signal
			item.Signal = &sig
		}
		out = append(out, item)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
