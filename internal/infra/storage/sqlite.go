package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	config "github.com/promptlift/cli/config"
	domain "github.com/promptlift/cli/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements domain.UsageStore using SQLite
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite usage store
func NewSQLiteStore(cfg config.SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db, path: cfg.Path}

	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		prompt_tokens INTEGER NOT NULL DEFAULT 0,
		completion_tokens INTEGER NOT NULL DEFAULT 0,
		total_tokens INTEGER NOT NULL DEFAULT 0,
		timestamp INTEGER NOT NULL,
		approximate BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_usage_events_timestamp ON usage_events(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append inserts an event and trims the table to the retention cap
func (s *SQLiteStore) Append(ctx context.Context, event domain.TokenUsageEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_events (provider, model, prompt_tokens, completion_tokens, total_tokens, timestamp, approximate)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Provider, event.Model, event.PromptTokens, event.CompletionTokens,
		event.TotalTokens, event.Timestamp, event.Approximate)
	if err != nil {
		return fmt.Errorf("failed to insert usage event: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM usage_events
		WHERE id NOT IN (SELECT id FROM usage_events ORDER BY id DESC LIMIT ?)`,
		MaxEvents)
	if err != nil {
		return fmt.Errorf("failed to trim usage events: %w", err)
	}

	return nil
}

// List returns all retained events in insertion order
func (s *SQLiteStore) List(ctx context.Context) ([]domain.TokenUsageEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provider, model, prompt_tokens, completion_tokens, total_tokens, timestamp, approximate
		FROM usage_events ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []domain.TokenUsageEvent
	for rows.Next() {
		var event domain.TokenUsageEvent
		if err := rows.Scan(&event.Provider, &event.Model, &event.PromptTokens,
			&event.CompletionTokens, &event.TotalTokens, &event.Timestamp,
			&event.Approximate); err != nil {
			return nil, fmt.Errorf("failed to scan usage event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Health checks if the database is reachable
func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
