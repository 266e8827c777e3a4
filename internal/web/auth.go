package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tech-blog-pro/blog-api/library/auth"
	"github.com/tech-blog-pro/blog-api/library/jwt"
)

// getUserClaims is an override point for tests.
var getUserClaims = func(ctx context.Context, uc *jwt.UserClaims) error {
	return auth.Instance.GetUserClaims(ctx, uc)
}

// CurrentClaims returns the verified token claims of the caller.
func CurrentClaims(ctx *gin.Context) (*jwt.UserClaims, error) {
	uc := new(jwt.UserClaims)
	if err := getUserClaims(ctx, uc); err != nil {
		return nil, Unauthorized("login required")
	}

	return uc, nil
}

// RequireAdmin fails closed with 403 before any data access happens;
// the admin flag is carried in the token, no store roundtrip needed.
func RequireAdmin(ctx *gin.Context) (*jwt.UserClaims, error) {
	uc, err := CurrentClaims(ctx)
	if err != nil {
		return nil, err
	}

	if !uc.IsAdmin {
		return nil, Forbidden("you can only access admin views")
	}

	return uc, nil
}

// OptionalClaims returns claims when a valid token is present, nil otherwise.
func OptionalClaims(ctx *gin.Context) *jwt.UserClaims {
	uc := new(jwt.UserClaims)
	if err := getUserClaims(ctx, uc); err != nil {
		return nil
	}

	return uc
}
