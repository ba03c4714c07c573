// Package services contains server-side business logic. This file implements
// SessionService: durable, expiring key–payload storage addressed by an
// opaque token carried in a cookie.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/evetodo/eve-server/internal/logging"
	"github.com/evetodo/eve-server/internal/server/config"
	"github.com/evetodo/eve-server/internal/server/models"
	"github.com/evetodo/eve-server/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SessionState classifies the outcome of a session lookup. Corrupt is kept
// distinct from Absent internally so the fail-open decision (treating a
// corrupt payload as an anonymous session) is made in exactly one place and
// logged, instead of disappearing inside the decoder.
type SessionState int

const (
	SessionAbsent SessionState = iota
	SessionValid
	SessionCorrupt
)

// SessionService provides the two session-store operations:
//   - Resolve: look up the payload behind a cookie token, sliding the expiry
//     forward when the remaining lifetime drops below the refresh window.
//   - Commit: write a payload under an existing or freshly minted token.
type SessionService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	lifetime      time.Duration
	refreshWindow time.Duration
	logger        logging.Logger
	now           func() time.Time
}

// NewSessionService constructs a SessionService using repositories and
// server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *SessionService {
	return &SessionService{
		db:            db,
		repomanager:   m,
		lifetime:      cfg.SessionLifetime,
		refreshWindow: cfg.SessionRefreshWindow,
		logger:        l.With("module", "session_store"),
		now:           time.Now,
	}
}

// Resolve maps a cookie value onto the stored session. A missing cookie, an
// unknown or expired token, and a corrupt payload all resolve to the
// anonymous session ("", zero SessionData). When the found row has less than
// the refresh window left to live, its expiry is pushed out to a full
// lifetime from now; the token and payload are unchanged by renewal.
//
// Only storage failures are returned as errors; the caller must treat them
// as persistence errors, not as an anonymous session.
func (s *SessionService) Resolve(ctx context.Context, cookieValue string) (string, models.SessionData, error) {
	if cookieValue == "" {
		return "", models.SessionData{}, nil
	}

	state, data, err := s.lookup(ctx, cookieValue)
	if err != nil {
		return "", models.SessionData{}, fmt.Errorf("error searching session: %w", err)
	}

	switch state {
	case SessionCorrupt:
		// Fail open: a payload we cannot decode counts as no session.
		s.logger.Warn(ctx, "discarding corrupt session payload", "session_id", cookieValue)
		return "", models.SessionData{}, nil
	case SessionAbsent:
		return "", models.SessionData{}, nil
	}

	now := s.now()
	repo := s.repomanager.Sessions(s.db)
	if err := repo.ExtendExpiry(ctx, cookieValue, now.Add(s.refreshWindow), now.Add(s.lifetime)); err != nil {
		return "", models.SessionData{}, fmt.Errorf("error renewing session: %w", err)
	}

	return cookieValue, data, nil
}

// lookup fetches and decodes the session row, classifying the result.
func (s *SessionService) lookup(ctx context.Context, id string) (SessionState, models.SessionData, error) {
	repo := s.repomanager.Sessions(s.db)

	record, err := repo.Find(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return SessionAbsent, models.SessionData{}, nil
		}
		return SessionAbsent, models.SessionData{}, err
	}

	var data models.SessionData
	if err := json.Unmarshal([]byte(record.Content), &data); err != nil {
		return SessionCorrupt, models.SessionData{}, nil
	}
	return SessionValid, data, nil
}

// Commit writes data under id, minting a fresh random token when id is
// empty, and returns the token the HTTP layer must set as the cookie value.
// On error nothing may be treated as committed and no cookie may be set.
func (s *SessionService) Commit(ctx context.Context, id string, data models.SessionData) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	content, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("error encoding session: %w", err)
	}

	repo := s.repomanager.Sessions(s.db)
	if err := repo.Upsert(ctx, id, string(content), s.now().Add(s.lifetime)); err != nil {
		return "", fmt.Errorf("error saving session: %w", err)
	}

	return id, nil
}
