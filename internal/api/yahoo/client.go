package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	httpClient "github.com/Alias1177/QuotexSignals/internal/platform/http"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the Yahoo Finance chart API client
type Client struct {
	baseURL    string
	interval   string
	rangeSpec  string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Yahoo client
type ClientOptions struct {
	BaseURL         string
	Interval        string // chart interval, e.g. "5m", "1h", "1d"
	Range           string // chart range, e.g. "5d", "1mo"
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Yahoo Finance client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetries:      options.MaxRetries,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}

	// Apply defaults if not set
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}
	if options.Interval == "" {
		options.Interval = "5m"
	}
	if options.Range == "" {
		options.Range = "5d"
	}

	return &Client{
		baseURL:    options.BaseURL,
		interval:   options.Interval,
		rangeSpec:  options.Range,
		httpClient: httpClient.NewClient(httpOpts),
		logger:     log.With().Str("component", "yahoo_client").Logger(),
	}
}

// chartResponse is the response structure of the v8 chart endpoint.
// Quote arrays hold null for bars without trades.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetSeries fetches the price series for a Yahoo ticker such as BTC-USD,
// EURUSD=X or GC=F. Bars are returned oldest first.
func (c *Client) GetSeries(ctx context.Context, symbol string) (models.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.interval), url.QueryEscape(c.rangeSpec))

	c.logger.Debug().Str("url", u).Msg("Fetching chart")

	body, err := c.httpClient.Get(ctx, u, map[string]string{"User-Agent": "Mozilla/5.0"})
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, okO := at(quote.Open, i)
		h, okH := at(quote.High, i)
		l, okL := at(quote.Low, i)
		cl, okC := at(quote.Close, i)
		if !okO || !okH || !okL || !okC {
			continue // skip null bars (market closed, no trades)
		}
		vol, _ := at(quote.Volume, i)

		series = append(series, models.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: vol,
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("empty data returned for %s", symbol)
	}

	// Sort bars by time (oldest first for proper calculations)
	sort.Slice(series, func(i, j int) bool {
		return series[i].Time.Before(series[j].Time)
	})

	c.logger.Debug().Str("symbol", symbol).Int("count", len(series)).Msg("Fetched bars")
	return series, nil
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}
