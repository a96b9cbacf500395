package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tesseract-nexus/storefront-client/internal/config"
)

type postgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewConnection opens a Postgres connection from config
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewPostgresStore creates a store backed by the client_state table:
//
//	CREATE TABLE client_state (
//	    key        TEXT PRIMARY KEY,
//	    value      TEXT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
func NewPostgresStore(db *sql.DB, logger *zap.Logger) Store {
	return &postgresStore{db: db, logger: logger}
}

func (s *postgresStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM client_state
		WHERE key = $1
	`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read client state", zap.String("key", key), zap.Error(err))
		return "", false, err
	}

	return value, true, nil
}

func (s *postgresStore) SetItem(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3
	`

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now())
	if err != nil {
		s.logger.Error("Failed to write client state", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (s *postgresStore) RemoveItem(ctx context.Context, key string) error {
	query := `
		DELETE FROM client_state
		WHERE key = $1
	`

	_, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		s.logger.Error("Failed to remove client state", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}
