// Package sessions declares the repository contract for cookie-backed
// session rows.
package sessions

import (
	"context"
	"time"

	"github.com/evetodo/eve-server/internal/server/models"
)

// Repository defines persistence operations for the cookie_session table.
// Expiry arithmetic is performed by the caller so that time is controlled in
// exactly one place.
type Repository interface {
	// Find returns the session row with the given id whose expiry is after
	// now. A missing or expired row yields common.ErrorNotFound.
	Find(ctx context.Context, id string, now time.Time) (*models.SessionRecord, error)

	// ExtendExpiry moves the row's expiry to newExpiry, but only when the
	// current expiry is before threshold (the sliding-renewal window guard).
	// Extending a missing row is not an error.
	ExtendExpiry(ctx context.Context, id string, threshold, newExpiry time.Time) error

	// Upsert writes (id, content, expiry), overwriting content and expiry
	// when the id already exists.
	Upsert(ctx context.Context, id, content string, expiry time.Time) error
}
