// This file implements AccountService, which handles registration, login,
// self-service profile updates, and issuing bearer tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/evetodo/eve-server/internal/server/auth"
	"github.com/evetodo/eve-server/internal/server/config"
	"github.com/evetodo/eve-server/internal/server/models"
	"github.com/evetodo/eve-server/internal/server/repositories/repomanager"
)

// AccountService provides account-related operations:
//   - Register: create accounts
//   - Login: verify credentials
//   - Get / Update: profile read and self-service change
//   - IssueToken: mint a bearer JWT for token-based clients
type AccountService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      Hasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewAccountService constructs an AccountService using repositories, the
// password hasher, and server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, h Hasher, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                          db,
		repomanager:                 m,
		hasher:                      h,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new account. The display name defaults to the username
// when empty. A taken username yields common.ErrorValidation.
func (s *AccountService) Register(ctx context.Context, username, displayName, password string) (*models.Account, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if displayName == "" {
		displayName = username
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.Create(ctx, &models.Account{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: username is already used", common.ErrorValidation)
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	return account, nil
}

// Login verifies the credentials and returns the account. A missing account
// and a wrong password are indistinguishable: both yield
// common.ErrorUnauthorized.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error fetching account: %w", err)
	}
	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, common.ErrorUnauthorized
	}
	return account, nil
}

// Get returns the account with the given id.
func (s *AccountService) Get(ctx context.Context, accountID int64) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching account: %w", err)
	}
	return account, nil
}

// Update applies a self-service profile change; username, display name and
// password are each independently optional. An empty update yields
// common.ErrorValidation, a taken username common.ErrorValidation as well.
func (s *AccountService) Update(ctx context.Context, accountID int64, username, displayName, password *string) error {
	update := models.AccountUpdate{
		Username:    username,
		DisplayName: displayName,
	}
	if password != nil {
		hash, err := s.hasher.Hash(*password)
		if err != nil {
			return common.ErrorInternal
		}
		update.PasswordHash = &hash
	}
	if update.IsEmpty() {
		return common.ErrorValidation
	}

	repo := s.repomanager.Accounts(s.db)
	if err := repo.Update(ctx, accountID, update); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("%w: username is already used", common.ErrorValidation)
		}
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error updating account: %w", err)
	}
	return nil
}

// IssueToken verifies the credentials and mints a bearer JWT carrying the
// account id.
func (s *AccountService) IssueToken(ctx context.Context, username, password string) (string, error) {
	account, err := s.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
