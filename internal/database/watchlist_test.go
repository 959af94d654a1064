package database

import (
	"context"
	"os"
	"testing"

	"github.com/Alias1177/QuotexSignals/models"
)

// runWatchStoreSuite exercises any models.WatchStore implementation
func runWatchStoreSuite(t *testing.T, store models.WatchStore) {
	t.Helper()
	ctx := context.Background()

	for _, w := range []struct {
		chat   int64
		symbol string
	}{
		{1, "ETH-USD"},
		{1, "BTC-USD"},
		{1, "BTC-USD"}, // повтор не создаёт дубликат
		{2, "GC=F"},
	} {
		if err := store.AddWatch(ctx, w.chat, w.symbol); err != nil {
			t.Fatalf("AddWatch(%d, %s) error = %v", w.chat, w.symbol, err)
		}
	}

	list, err := store.ListWatches(ctx, 1)
	if err != nil {
		t.Fatalf("ListWatches() error = %v", err)
	}
	if len(list) != 2 || list[0].Symbol != "BTC-USD" || list[1].Symbol != "ETH-USD" {
		t.Errorf("ListWatches(1) = %+v, want [BTC-USD ETH-USD]", list)
	}

	all, err := store.AllWatches(ctx)
	if err != nil {
		t.Fatalf("AllWatches() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("AllWatches() returned %d entries, want 3", len(all))
	}

	removed, err := store.RemoveWatch(ctx, 1, "BTC-USD")
	if err != nil || !removed {
		t.Errorf("RemoveWatch(1, BTC-USD) = %v, %v; want true, nil", removed, err)
	}
	removed, err = store.RemoveWatch(ctx, 1, "BTC-USD")
	if err != nil || removed {
		t.Errorf("second RemoveWatch(1, BTC-USD) = %v, %v; want false, nil", removed, err)
	}
	removed, _ = store.RemoveWatch(ctx, 42, "TSLA")
	if removed {
		t.Error("RemoveWatch() on unknown chat = true, want false")
	}

	list, _ = store.ListWatches(ctx, 1)
	if len(list) != 1 || list[0].Symbol != "ETH-USD" {
		t.Errorf("ListWatches(1) after remove = %+v, want [ETH-USD]", list)
	}
}

func TestMemoryStore(t *testing.T) {
	runWatchStoreSuite(t, NewMemoryStore())
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("QUOTEX_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("QUOTEX_TEST_POSTGRES_DSN not set")
	}

	db, err := open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`TRUNCATE watchlist`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	runWatchStoreSuite(t, db)
}

func TestConnectionParamsDSN(t *testing.T) {
	p := ConnectionParams{Host: "localhost", Port: "5432", User: "bot", Password: "secret", DBName: "signals"}
	want := "host=localhost port=5432 user=bot password=secret dbname=signals sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
