package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/gitpulse-io/gitpulse/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// PostgresStore persists session state as string values keyed by name.
// Writes are synchronous upserts, so write-through callers need no batching.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			errors.RefStoreError,
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		)
	}

	// * Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	// * Verify connection
	if err := db.Ping(); err != nil {
		return nil, errors.New(
			errors.RefStoreError,
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		)
	}

	logger.Info("connected to database successfully 🎉")
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Migrate() error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			errors.RefStoreError,
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return errors.New(
			errors.RefStoreError,
			"Failed to create migration instance",
			"Could not create migration instance with database",
			err,
			errors.LevelError,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			errors.RefStoreError,
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresStore) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			errors.RefStoreError,
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM session_store WHERE key = $1`, key,
	).Scan(&value)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.New(
				errors.RefStoreNotFound,
				"Key not found",
				fmt.Sprintf("No stored value for key '%s'", key),
				err,
				errors.LevelInfo,
			)
		}
		return "", errors.New(
			errors.RefStoreError,
			"Failed to read stored value",
			fmt.Sprintf("Could not read key '%s'", key),
			err,
			errors.LevelError,
		)
	}

	return value, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO session_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT(key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value)

	if err != nil {
		return errors.New(
			errors.RefStoreError,
			"Failed to write stored value",
			fmt.Sprintf("Could not upsert key '%s'", key),
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM session_store WHERE key = $1`, key)
	if err != nil {
		return errors.New(
			errors.RefStoreError,
			"Failed to delete stored value",
			fmt.Sprintf("Could not delete key '%s'", key),
			err,
			errors.LevelError,
		)
	}
	return nil
}
