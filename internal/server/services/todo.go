// This file implements TodoService: todo CRUD with per-project sequence
// numbering.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/evetodo/eve-server/internal/dbx"
	"github.com/evetodo/eve-server/internal/server/models"
	"github.com/evetodo/eve-server/internal/server/repositories/repomanager"
	"github.com/sethvargo/go-retry"
)

// TodoParams carries the writable attributes of a todo for create and
// update. Nil pointers mean "unset" (no deadline, no project, ...).
type TodoParams struct {
	Title       string
	Memo        string
	CompletedAt *time.Time
	Deadline    *time.Time
	ProjectID   *int64
}

// TodoService provides todo operations scoped to one account. Numbering is
// computed inside single SQL statements by the repository; the service adds
// the ownership checks and the bounded retry around the unique-constraint
// backstop.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// Create inserts a todo for the account. When params.ProjectID is set the
// project must exist and belong to the same account; a missing project and a
// foreign project both yield common.ErrorUnauthorized. The new todo receives
// the next free number in its project, or no number without a project.
func (s *TodoService) Create(ctx context.Context, accountID int64, params TodoParams) (*models.Todo, error) {
	if params.Title == "" {
		return nil, common.ErrorValidation
	}
	if err := s.checkProjectOwnership(ctx, accountID, params.ProjectID); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		AccountID:   accountID,
		Title:       params.Title,
		Memo:        params.Memo,
		CompletedAt: params.CompletedAt,
		Deadline:    params.Deadline,
		ProjectID:   params.ProjectID,
	}

	repo := s.repomanager.Todos(s.db)
	var created *models.Todo
	err := s.withNumberingRetry(ctx, func(ctx context.Context) error {
		var err error
		created, err = repo.Create(ctx, todo)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}
	return created, nil
}

// Update rewrites the todo's attributes. The todo must belong to the account
// (common.ErrorNotFound otherwise); a changed project reference must point at
// a project of the same account (common.ErrorUnauthorized otherwise). The
// sequence number is preserved when the project is unchanged and recomputed
// when membership changes.
func (s *TodoService) Update(ctx context.Context, accountID, todoID int64, params TodoParams) (*models.Todo, error) {
	if params.Title == "" {
		return nil, common.ErrorValidation
	}
	if err := s.checkProjectOwnership(ctx, accountID, params.ProjectID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Todos(s.db)
	owned, err := repo.OwnedByAccount(ctx, todoID, accountID)
	if err != nil {
		return nil, fmt.Errorf("error validating todo: %w", err)
	}
	if !owned {
		return nil, common.ErrorNotFound
	}

	todo := &models.Todo{
		ID:          todoID,
		AccountID:   accountID,
		Title:       params.Title,
		Memo:        params.Memo,
		CompletedAt: params.CompletedAt,
		Deadline:    params.Deadline,
		ProjectID:   params.ProjectID,
	}

	var updated *models.Todo
	err = s.withNumberingRetry(ctx, func(ctx context.Context) error {
		var err error
		updated, err = repo.Update(ctx, todo)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating todo: %w", err)
	}
	return updated, nil
}

// Delete removes the todo. Numbers of the project's remaining todos are left
// untouched, so the deleted number stays a permanent gap.
func (s *TodoService) Delete(ctx context.Context, accountID, todoID int64) error {
	repo := s.repomanager.Todos(s.db)
	if err := repo.Delete(ctx, todoID, accountID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting todo: %w", err)
	}
	return nil
}

// List returns all todos owned by the account. Ordering is
// implementation-defined but stable across a single read.
func (s *TodoService) List(ctx context.Context, accountID int64) ([]models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todos, err := repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error fetching todos: %w", err)
	}
	return todos, nil
}

// checkProjectOwnership rejects a project reference that does not resolve to
// a project of this account. "Does not exist" and "not yours" are the same
// answer on purpose.
func (s *TodoService) checkProjectOwnership(ctx context.Context, accountID int64, projectID *int64) error {
	if projectID == nil {
		return nil
	}
	repo := s.repomanager.Projects(s.db)
	owned, err := repo.OwnedByAccount(ctx, *projectID, accountID)
	if err != nil {
		return fmt.Errorf("error validating project: %w", err)
	}
	if !owned {
		return common.ErrorUnauthorized
	}
	return nil
}

// withNumberingRetry runs fn, retrying exactly once when the numbering
// backstop constraint fires. Two concurrent writers racing for the same
// number is expected to be rare; a second collision is surfaced as a
// persistence error.
func (s *TodoService) withNumberingRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(1, retry.NewConstant(10*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if dbx.IsUniqueViolation(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
