package config

import "github.com/Alias1177/QuotexSignals/models"

// DefaultAssets is the catalog offered by /assets, in Yahoo ticker notation
func DefaultAssets() []models.AssetCategory {
	return []models.AssetCategory{
		{Name: "Crypto", Symbols: []string{
			"BTC-USD", "ETH-USD", "XRP-USD", "SOL-USD", "ADA-USD",
			"BNB-USD", "DOGE-USD", "DOT-USD", "MATIC-USD", "AVAX-USD",
		}},
		{Name: "Forex", Symbols: []string{
			"EURUSD=X", "GBPUSD=X", "USDJPY=X", "AUDUSD=X", "USDPKR=X",
			"USDCAD=X", "USDCHF=X", "NZDUSD=X", "EURGBP=X", "EURJPY=X",
		}},
		{Name: "Commodities", Symbols: []string{
			"GC=F", "SI=F", "CL=F", "HG=F", "NG=F",
			"PL=F", "PA=F", "ZC=F", "ZS=F", "KE=F",
		}},
		{Name: "Stocks", Symbols: []string{
			"TSLA", "AAPL", "AMZN", "GOOG", "META",
			"MSFT", "NVDA", "NFLX", "SPY", "QQQ",
		}},
	}
}
