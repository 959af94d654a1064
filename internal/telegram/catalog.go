package telegram

import (
	"regexp"
	"strings"

	"github.com/Alias1177/QuotexSignals/models"
)

// DefaultSymbol is analysed when /signal has no argument
const DefaultSymbol = "BTC-USD"

// Yahoo tickers: letters, digits and the separators used by FX, futures and indices
var symbolPattern = regexp.MustCompile(`^[A-Z0-9=^.\-]+$`)

// ValidSymbol reports whether symbol looks like a Yahoo ticker. Anything else
// is rejected before it reaches the data source or a Markdown reply.
func ValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}

// Catalog is the static list of assets offered to users
type Catalog []models.AssetCategory

// Contains reports whether symbol is listed in any category
func (c Catalog) Contains(symbol string) bool {
	for _, category := range c {
		for _, s := range category.Symbols {
			if s == symbol {
				return true
			}
		}
	}
	return false
}

// NormalizeSymbol turns a command argument into a ticker. The argument is
// upper-cased; catalog tickers are used as is, anything else without USD
// in it is treated as a crypto code and gets a -USD suffix.
func (c Catalog) NormalizeSymbol(arg string) string {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return DefaultSymbol
	}

	symbol := strings.ToUpper(fields[0])
	if c.Contains(symbol) || strings.Contains(symbol, "USD") {
		return symbol
	}
	return symbol + "-USD"
}
