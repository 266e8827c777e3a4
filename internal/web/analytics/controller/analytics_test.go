package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/tech-blog-pro/blog-api/internal/web"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/dao"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/service"
	"github.com/tech-blog-pro/blog-api/library/jwt"
	"github.com/tech-blog-pro/blog-api/library/log"
)

// newTestRouter mounts the controller with svc left nil: any handler
// that reaches the service layer panics, so these tests prove the
// admin gate rejects before any data access.
func newTestRouter(admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	t := New(nil)
	t.requireAdmin = func(ctx *gin.Context) (*jwt.UserClaims, error) {
		if !admin {
			return nil, web.Forbidden("you can only access admin views")
		}

		return &jwt.UserClaims{IsAdmin: true}, nil
	}

	server := gin.New()
	t.RegisterRoutes(server)
	return server
}

func TestDashboardRequiresAdmin(t *testing.T) {
	server := newTestRouter(false)

	for _, path := range []string{
		"/analytics/dashboard",
		"/analytics/post/507f1f77bcf86cd799439011",
	} {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusForbidden, w.Code, path)
		require.Contains(t, w.Body.String(), "admin")
	}
}

func TestTrackRejectsInvalidBody(t *testing.T) {
	server := newTestRouter(false)

	cases := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"missing type", `{"page": "/home"}`},
		{"missing page", `{"type": "page_view"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost,
				"/analytics/track", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// mockMongo adapts the mock deployment to the handle daos expect.
type mockMongo struct {
	db *mongoLib.Database
}

func (m *mockMongo) Close(_ context.Context) error { return nil }

func (m *mockMongo) GetCol(name string) *mongoLib.Collection { return m.db.Collection(name) }

func (m *mockMongo) CurrentDB() *mongoLib.Database { return m.db }

// newMockRouter mounts the controller over a real service backed by
// the mock deployment.
func newMockRouter(mt *mtest.T) *gin.Engine {
	mt.Helper()
	gin.SetMode(gin.TestMode)

	// index creation on service startup
	mt.AddMockResponses(mtest.CreateSuccessResponse())
	svc, err := service.New(context.Background(),
		log.Logger, dao.New(log.Logger, &mockMongo{db: mt.DB}))
	require.NoError(mt, err)

	server := gin.New()
	New(svc).RegisterRoutes(server)
	return server
}

func TestTrackStatusMapping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown event type answers 400", func(mt *mtest.T) {
		server := newMockRouter(mt)

		req := httptest.NewRequest(http.MethodPost, "/analytics/track",
			strings.NewReader(`{"type": "bogus", "page": "/home"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(mt, http.StatusBadRequest, w.Code)
		require.Contains(mt, w.Body.String(), "unknown event type")
	})

	mt.Run("store failure answers 500 without details", func(mt *mtest.T) {
		server := newMockRouter(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		req := httptest.NewRequest(http.MethodPost, "/analytics/track",
			strings.NewReader(`{"type": "page_view", "page": "/home"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(mt, http.StatusInternalServerError, w.Code)
		require.Contains(mt, w.Body.String(), "internal server error")
		require.NotContains(mt, w.Body.String(), "interrupted",
			"store internals must not reach the client")
	})
}
