package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
	_ "github.com/lib/pq"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the lib/pq connection string
func (p ConnectionParams) DSN() string {
	sslMode := p.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, sslMode,
	)
}

// New creates a new database connection
func New(ctx context.Context, params ConnectionParams) (*DB, error) {
	return open(ctx, params.DSN())
}

func open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS watchlist (
			chat_id BIGINT NOT NULL,
			symbol TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (chat_id, symbol)
		)
	`)
	return err
}

// AddWatch subscribes a chat to a symbol; repeating it is a no-op
func (db *DB) AddWatch(ctx context.Context, chatID int64, symbol string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO watchlist (chat_id, symbol, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id, symbol) DO NOTHING
	`, chatID, symbol, time.Now().UTC())
	return err
}

// RemoveWatch unsubscribes a chat and reports whether anything was removed
func (db *DB) RemoveWatch(ctx context.Context, chatID int64, symbol string) (bool, error) {
	res, err := db.ExecContext(ctx, `
		DELETE FROM watchlist
		WHERE chat_id = $1 AND symbol = $2
	`, chatID, symbol)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListWatches returns a chat's subscriptions ordered by symbol
func (db *DB) ListWatches(ctx context.Context, chatID int64) ([]models.WatchEntry, error) {
	return db.queryWatches(ctx, `
		SELECT chat_id, symbol, created_at
		FROM watchlist
		WHERE chat_id = $1
		ORDER BY symbol
	`, chatID)
}

// AllWatches returns every subscription, grouped by chat
func (db *DB) AllWatches(ctx context.Context) ([]models.WatchEntry, error) {
	return db.queryWatches(ctx, `
		SELECT chat_id, symbol, created_at
		FROM watchlist
		ORDER BY chat_id, symbol
	`)
}

func (db *DB) queryWatches(ctx context.Context, query string, args ...any) ([]models.WatchEntry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.WatchEntry
	for rows.Next() {
		var e models.WatchEntry
		if err := rows.Scan(&e.ChatID, &e.Symbol, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
