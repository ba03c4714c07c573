// This file implements ProjectService: creating and listing the projects a
// todo can belong to.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/evetodo/eve-server/internal/server/models"
	"github.com/evetodo/eve-server/internal/server/repositories/repomanager"
)

// ProjectService provides project operations scoped to one account.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProjectService constructs a ProjectService.
func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

// Create stores a new project for the account. Shortcodes are unique per
// account; a collision yields common.ErrorValidation.
func (s *ProjectService) Create(ctx context.Context, accountID int64, shortcode, name string) (*models.Project, error) {
	if shortcode == "" || name == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Projects(s.db)
	project, err := repo.Create(ctx, &models.Project{
		AccountID: accountID,
		Shortcode: shortcode,
		Name:      name,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: shortcode is already used", common.ErrorValidation)
		}
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return project, nil
}

// List returns all projects owned by the account.
func (s *ProjectService) List(ctx context.Context, accountID int64) ([]models.Project, error) {
	repo := s.repomanager.Projects(s.db)
	projects, err := repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error fetching projects: %w", err)
	}
	return projects, nil
}
