// Package todos declares the repository contract for todo rows, including
// atomic per-project sequence numbering.
package todos

import (
	"context"

	"github.com/evetodo/eve-server/internal/server/models"
)

// Repository defines persistence operations for todos.
//
// Create and Update assign project_todo_number inside a single SQL statement:
// the next number is computed by a subquery over the destination project, so
// two concurrent writers cannot both observe the same maximum without one of
// them tripping the unique constraint on (project_id, project_todo_number).
// Callers detect that via dbx.IsUniqueViolation and may retry.
type Repository interface {
	// Create inserts the todo. When todo.ProjectID is set, the new row gets
	// the next free number in that project; otherwise the number is NULL.
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)

	// Update rewrites title, memo, completed_at, deadline and project
	// membership of the row with todo.ID. The sequence number is preserved
	// when the project reference is unchanged and recomputed (or NULLed)
	// when it changes. A missing row yields common.ErrorNotFound.
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)

	// Delete removes the todo owned by accountID. Numbers of the remaining
	// todos are untouched, leaving a gap. A missing row yields
	// common.ErrorNotFound.
	Delete(ctx context.Context, todoID, accountID int64) error

	// ListByAccount returns all todos owned by the account, ordered by id.
	ListByAccount(ctx context.Context, accountID int64) ([]models.Todo, error)

	// OwnedByAccount reports whether the todo exists and belongs to the
	// account.
	OwnedByAccount(ctx context.Context, todoID, accountID int64) (bool, error)
}
