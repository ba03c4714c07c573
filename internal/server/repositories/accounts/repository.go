// Package accounts declares the repository contract for account rows.
package accounts

import (
	"context"

	"github.com/evetodo/eve-server/internal/server/models"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	// Create stores a new account and returns it with the assigned id.
	// A username collision yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByUsername returns the account with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetByID returns the account with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// Update applies a partial profile change. Updating a missing account
	// yields common.ErrorNotFound; a username collision yields
	// common.ErrorAlreadyExists.
	Update(ctx context.Context, id int64, update models.AccountUpdate) error
}
