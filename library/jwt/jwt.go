// Package jwt holds the token claims shared between auth middleware and handlers.
package jwt

import (
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	jwtLib "github.com/golang-jwt/jwt/v5"
)

// TokenExpires is how long an issued token stays valid.
const TokenExpires = 7 * 24 * time.Hour

// UserClaims claims carried by the auth cookie/token.
type UserClaims struct {
	jwtLib.RegisteredClaims
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// NewUserClaims builds claims for userID, stamped with the shared clock.
func NewUserClaims(userID, username string, isAdmin bool) *UserClaims {
	now := gutils.Clock.GetUTCNow()
	return &UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtLib.NewNumericDate(now),
			ExpiresAt: jwtLib.NewNumericDate(now.Add(TokenExpires)),
		},
		Username: username,
		IsAdmin:  isAdmin,
	}
}

// Validate implements jwt.ClaimsValidator; the registered time checks
// run in the library, this only guards the subject.
func (uc *UserClaims) Validate() error {
	if uc.Subject == "" {
		return errors.New("empty subject")
	}

	return nil
}
