// Package projects provides a PostgreSQL-backed repository for project rows.
package projects

import (
	"context"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	query := `
		INSERT INTO project (account_id, shortcode, project_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		project.AccountID, project.Shortcode, project.Name).Scan(&project.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Project, error) {
	query := `
		SELECT id, account_id, shortcode, project_name FROM project
		WHERE account_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Shortcode, &p.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) OwnedByAccount(ctx context.Context, projectID, accountID int64) (bool, error) {
	query := `
		SELECT COUNT(*) FROM project
		WHERE id = $1 AND account_id = $2
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, projectID, accountID).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return count > 0, nil
}
