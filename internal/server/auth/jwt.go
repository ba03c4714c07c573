// Package auth implements the bearer-token side of account resolution:
// HS256 JWTs carrying the account id.
package auth

import (
	"time"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the authenticated account id.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64
}

// GenerateToken mints a signed HS256 token for accountID valid for
// validityDuration.
func GenerateToken(accountID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: accountID,
	})
	return token.SignedString(secretKey)
}

// GetAccountIDFromToken verifies the token signature and expiry and returns
// the embedded account id. Any verification failure yields
// common.ErrInvalidToken, so a tampered or expired bearer header can never
// resolve to an identity.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
