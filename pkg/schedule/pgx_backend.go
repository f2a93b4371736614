package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBackend persists values in the schedule_store key/value table.
type PgxBackend struct {
	db *pgxpool.Pool
}

func NewPgxBackend(db *pgxpool.Pool) *PgxBackend {
	return &PgxBackend{db: db}
}

func (b *PgxBackend) Read(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM schedule_store WHERE key = $1`
	var value string
	err := b.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("could not read %s: %w", key, err)
	}
	return value, true, nil
}

func (b *PgxBackend) Write(ctx context.Context, key string, value string) error {
	query := `INSERT INTO schedule_store (key, value, updated_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`
	_, err := b.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("could not write %s: %w", key, err)
	}
	return nil
}
