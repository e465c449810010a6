package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMedium stores the collection documents in a single Postgres table,
// one row per document key. It lets a server deployment swap the browser-style
// local medium for a real database without touching the store logic.
type PostgresMedium struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the documents
// table exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresMedium, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS career_documents (
			key        TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure documents table: %w", err)
	}

	return &PostgresMedium{pool: pool}, nil
}

// Close closes the connection pool.
func (m *PostgresMedium) Close() {
	if m.pool != nil {
		m.pool.Close()
	}
}

// Get implements Medium.
func (m *PostgresMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc []byte
	err := m.pool.QueryRow(ctx,
		`SELECT doc FROM career_documents WHERE key = $1`, key,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	return doc, true, nil
}

// Set implements Medium.
func (m *PostgresMedium) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.pool.Exec(ctx,
		`INSERT INTO career_documents (key, doc)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET doc = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set document %s: %w", key, err)
	}
	return nil
}

// Delete implements Medium.
func (m *PostgresMedium) Delete(ctx context.Context, key string) error {
	_, err := m.pool.Exec(ctx, `DELETE FROM career_documents WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}
