package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	config "github.com/promptlift/cli/config"
	domain "github.com/promptlift/cli/internal/domain"
	_ "github.com/lib/pq"
)

// PostgresStore implements domain.UsageStore using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

func postgresDSN(cfg config.PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode)
}

// NewPostgresStore creates a new PostgreSQL usage store
func NewPostgresStore(cfg config.PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL at %s:%d: %w",
			cfg.Host, cfg.Port, err)
	}

	store := &PostgresStore{db: db}

	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage_events (
		id BIGSERIAL PRIMARY KEY,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		prompt_tokens BIGINT NOT NULL DEFAULT 0,
		completion_tokens BIGINT NOT NULL DEFAULT 0,
		total_tokens BIGINT NOT NULL DEFAULT 0,
		timestamp BIGINT NOT NULL,
		approximate BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_usage_events_timestamp ON usage_events(timestamp);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Append inserts an event and trims the table to the retention cap
func (s *PostgresStore) Append(ctx context.Context, event domain.TokenUsageEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_events (provider, model, prompt_tokens, completion_tokens, total_tokens, timestamp, approximate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.Provider, event.Model, event.PromptTokens, event.CompletionTokens,
		event.TotalTokens, event.Timestamp, event.Approximate)
	if err != nil {
		return fmt.Errorf("failed to insert usage event: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM usage_events
		WHERE id NOT IN (SELECT id FROM usage_events ORDER BY id DESC LIMIT $1)`,
		MaxEvents)
	if err != nil {
		return fmt.Errorf("failed to trim usage events: %w", err)
	}

	return nil
}

// List returns all retained events in insertion order
func (s *PostgresStore) List(ctx context.Context) ([]domain.TokenUsageEvent, error) {
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Health checks if the database is reachable
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
