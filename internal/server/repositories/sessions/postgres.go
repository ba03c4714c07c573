// Package sessions provides a PostgreSQL-backed repository for the
// cookie_session table.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/evetodo/eve-server/internal/dbx"
	"github.com/evetodo/eve-server/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Find returns the unexpired session row for id, or common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, id string, now time.Time) (*models.SessionRecord, error) {
	query := `
		SELECT id, content, expiry FROM cookie_session
		WHERE id = $1 AND expiry > $2
	`
	record := &models.SessionRecord{}
	err := r.db.QueryRowContext(ctx, query, id, now).
		Scan(&record.ID, &record.Content, &record.Expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return record, nil
}

// ExtendExpiry pushes the expiry of id out to newExpiry when the stored
// expiry is still before threshold.
func (r *PostgresRepository) ExtendExpiry(ctx context.Context, id string, threshold, newExpiry time.Time) error {
	query := `
		UPDATE cookie_session
		SET expiry = $3
		WHERE id = $1 AND expiry < $2
	`
	if _, err := r.db.ExecContext(ctx, query, id, threshold, newExpiry); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Upsert writes the session row, replacing content and expiry on conflict.
func (r *PostgresRepository) Upsert(ctx context.Context, id, content string, expiry time.Time) error {
	query := `
		INSERT INTO cookie_session (id, content, expiry)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET content = EXCLUDED.content, expiry = EXCLUDED.expiry
	`
	if _, err := r.db.ExecContext(ctx, query, id, content, expiry); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
