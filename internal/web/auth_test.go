package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tech-blog-pro/blog-api/library/jwt"
)

func withClaims(t *testing.T, uc *jwt.UserClaims, claimsErr error) {
	t.Helper()
	orig := getUserClaims
	t.Cleanup(func() { getUserClaims = orig })

	getUserClaims = func(_ context.Context, dst *jwt.UserClaims) error {
		if claimsErr != nil {
			return claimsErr
		}

		*dst = *uc
		return nil
	}
}

func newTestCtx(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return ctx
}

func adminClaims(isAdmin bool) *jwt.UserClaims {
	return &jwt.UserClaims{
		RegisteredClaims: jwtLib.RegisteredClaims{Subject: "507f1f77bcf86cd799439011"},
		Username:         "alice",
		IsAdmin:          isAdmin,
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		withClaims(t, adminClaims(true), nil)

		uc, err := RequireAdmin(newTestCtx(t))
		require.NoError(t, err)
		require.True(t, uc.IsAdmin)
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		withClaims(t, adminClaims(false), nil)

		_, err := RequireAdmin(newTestCtx(t))
		require.Error(t, err)

		se := new(StatusError)
		require.True(t, errors.As(err, &se))
		require.Equal(t, http.StatusForbidden, se.Code)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		withClaims(t, nil, errors.New("no token"))

		_, err := RequireAdmin(newTestCtx(t))
		require.Error(t, err)

		se := new(StatusError)
		require.True(t, errors.As(err, &se))
		require.Equal(t, http.StatusUnauthorized, se.Code)
	})
}

func TestOptionalClaims(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		withClaims(t, adminClaims(false), nil)
		require.NotNil(t, OptionalClaims(newTestCtx(t)))
	})

	t.Run("anonymous", func(t *testing.T) {
		withClaims(t, nil, errors.New("no token"))
		require.Nil(t, OptionalClaims(newTestCtx(t)))
	})
}
