// This file implements the account resolver: turning one request's
// credentials (bearer header or session payload) into an authenticated
// account identity.
package services

import (
	"strings"

	"github.com/evetodo/eve-server/internal/server/auth"
	"github.com/evetodo/eve-server/internal/server/config"
	"github.com/evetodo/eve-server/internal/server/models"
)

const bearerPrefix = "Bearer "

// IdentityResolver resolves zero or one authenticated account identity from
// the Authorization header and the already-resolved session payload.
//
// The bearer path has precedence: when an Authorization header is present it
// alone decides the outcome. An invalid or malformed bearer token therefore
// yields no identity at all rather than falling back to the cookie session
// (fail closed).
type IdentityResolver struct {
	jwtSecret []byte
}

// NewIdentityResolver constructs an IdentityResolver from server config.
func NewIdentityResolver(cfg *config.Config) *IdentityResolver {
	return &IdentityResolver{jwtSecret: []byte(cfg.SecretKey)}
}

// Resolve returns the authenticated account id and true, or 0 and false when
// the request carries no usable identity. Pure: no I/O beyond what already
// happened to produce session.
func (r *IdentityResolver) Resolve(authorizationHeader string, session models.SessionData) (int64, bool) {
	if authorizationHeader != "" {
		token, ok := strings.CutPrefix(authorizationHeader, bearerPrefix)
		if !ok {
			return 0, false
		}
		accountID, err := auth.GetAccountIDFromToken(token, r.jwtSecret)
		if err != nil {
			return 0, false
		}
		return accountID, true
	}

	if session.AccountID != nil {
		return *session.AccountID, true
	}

	return 0, false
}
