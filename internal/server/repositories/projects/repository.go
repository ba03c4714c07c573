// Package projects declares the repository contract for project rows.
package projects

import (
	"context"

	"github.com/evetodo/eve-server/internal/server/models"
)

// Repository defines persistence operations for projects.
type Repository interface {
	// Create stores a new project and returns it with the assigned id.
	// A shortcode collision within the account yields common.ErrorAlreadyExists.
	Create(ctx context.Context, project *models.Project) (*models.Project, error)

	// ListByAccount returns all projects owned by the account, ordered by id.
	ListByAccount(ctx context.Context, accountID int64) ([]models.Project, error)

	// OwnedByAccount reports whether the project exists and belongs to the
	// account. A missing project and a foreign project are indistinguishable.
	OwnedByAccount(ctx context.Context, projectID, accountID int64) (bool, error)
}
