package models

import "context"

// SeriesSource supplies the price series analysed for a symbol
type SeriesSource interface {
	GetSeries(ctx context.Context, symbol string) (PriceSeries, error)
}

// WatchStore keeps the chats subscribed to scheduled signals
type WatchStore interface {
	AddWatch(ctx context.Context, chatID int64, symbol string) error
	RemoveWatch(ctx context.Context, chatID int64, symbol string) (bool, error)
	ListWatches(ctx context.Context, chatID int64) ([]WatchEntry, error)
	AllWatches(ctx context.Context) ([]WatchEntry, error)
}
