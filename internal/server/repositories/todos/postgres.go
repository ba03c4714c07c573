// Package todos provides a PostgreSQL-backed repository for todo rows.
package todos

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

// Create numbers the todo within its project as part of the INSERT itself,
// so the read-max/insert pair cannot interleave with a concurrent creation.
func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `
		INSERT INTO todo (account_id, title, memo, completed_at, deadline, project_id, project_todo_number)
		VALUES (
			$1, $2, $3, $4, $5, CAST($6 AS BIGINT),
			CASE WHEN $6 IS NULL THEN NULL ELSE (
				SELECT COALESCE(MAX(project_todo_number), 0) + 1 FROM todo
				WHERE project_id = $6
			) END
		)
		RETURNING id, account_id, title, memo, completed_at, deadline, project_id, project_todo_number
	`
	row := r.db.QueryRowContext(ctx, query,
		todo.AccountID, todo.Title, todo.Memo,
		nullTime(todo.CompletedAt), nullTime(todo.Deadline), nullInt64(todo.ProjectID))
	result, err := scanTodo(row)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update keeps the number when the project reference is unchanged
// (IS NOT DISTINCT FROM treats two NULLs as equal) and recomputes it inside
// the same statement when membership changes.
func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `
		UPDATE todo
		SET title = $2,
			memo = $3,
			completed_at = $4,
			deadline = $5,
			project_id = CAST($6 AS BIGINT),
			project_todo_number =
				CASE WHEN project_id IS NOT DISTINCT FROM CAST($6 AS BIGINT) THEN project_todo_number ELSE
				CASE WHEN $6 IS NULL THEN NULL ELSE (
					SELECT COALESCE(MAX(project_todo_number), 0) + 1 FROM todo
					WHERE project_id = $6
				) END END
		WHERE id = $1
		RETURNING id, account_id, title, memo, completed_at, deadline, project_id, project_todo_number
	`
	row := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Title, todo.Memo,
		nullTime(todo.CompletedAt), nullTime(todo.Deadline), nullInt64(todo.ProjectID))
	result, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, todoID, accountID int64) error {
	query := `
		DELETE FROM todo
		WHERE id = $1 AND account_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, todoID, accountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Todo, error) {
	query := `
		SELECT id, account_id, title, memo, completed_at, deadline, project_id, project_todo_number
		FROM todo
		WHERE account_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) OwnedByAccount(ctx context.Context, todoID, accountID int64) (bool, error) {
	query := `
		SELECT COUNT(*) FROM todo
		WHERE id = $1 AND account_id = $2
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, todoID, accountID).Scan(&count); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return count > 0, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*models.Todo, error) {
	var (
		todo        models.Todo
		completedAt sql.NullTime
		deadline    sql.NullTime
		projectID   sql.NullInt64
		number      sql.NullInt32
	)
	err := s.Scan(&todo.ID, &todo.AccountID, &todo.Title, &todo.Memo,
		&completedAt, &deadline, &projectID, &number)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		todo.CompletedAt = &completedAt.Time
	}
	if deadline.Valid {
		todo.Deadline = &deadline.Time
	}
	if projectID.Valid {
		todo.ProjectID = &projectID.Int64
	}
	if number.Valid {
		todo.ProjectTodoNumber = &number.Int32
	}
	return &todo, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
