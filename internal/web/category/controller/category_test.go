package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/tech-blog-pro/blog-api/internal/web"
	"github.com/tech-blog-pro/blog-api/internal/web/category/dao"
	"github.com/tech-blog-pro/blog-api/internal/web/category/model"
	"github.com/tech-blog-pro/blog-api/internal/web/category/service"
	"github.com/tech-blog-pro/blog-api/library/jwt"
	"github.com/tech-blog-pro/blog-api/library/log"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// svc stays nil: reaching the service layer would panic, so a 403
	// here proves the gate fires before any data access
	t := New(nil)
	t.requireAdmin = func(ctx *gin.Context) (*jwt.UserClaims, error) {
		return nil, web.Forbidden("you can only access admin views")
	}

	server := gin.New()
	t.RegisterRoutes(server)
	return server
}

func TestMapServiceErr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", errors.Wrap(model.ErrNotFound, "category"), http.StatusNotFound},
		{"duplicate", errors.Wrapf(model.ErrDuplicate, "category %q", "golang"), http.StatusBadRequest},
		{"in use", errors.Wrapf(model.ErrInUse, "%d posts still reference %q", 3, "golang"), http.StatusBadRequest},
		{"invalid", errors.Wrap(model.ErrInvalid, "name is required"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			se := new(web.StatusError)
			require.ErrorAs(t, mapServiceErr(tc.err), &se)
			require.Equal(t, tc.wantCode, se.Code)
		})
	}

	t.Run("untagged errors pass through unchanged", func(t *testing.T) {
		t.Parallel()

		// an untagged store failure keeps no status, so the central
		// responder answers 500 without leaking the details
		err := errors.New("connection reset by peer")
		mapped := mapServiceErr(err)
		require.Equal(t, err, mapped)
		se := new(web.StatusError)
		require.False(t, errors.As(mapped, &se))
	})
}

// mockMongo adapts the mock deployment to the handle daos expect.
type mockMongo struct {
	db *mongoLib.Database
}

func (m *mockMongo) Close(_ context.Context) error { return nil }

func (m *mockMongo) GetCol(name string) *mongoLib.Collection { return m.db.Collection(name) }

func (m *mockMongo) CurrentDB() *mongoLib.Database { return m.db }

// newMockRouter mounts the controller over a real service backed by
// the mock deployment, so the request reaches the query builder.
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

// findCommandFilter digs the filter document out of the find command
// the listing sent.
func findCommandFilter(mt *mtest.T) bson.Raw {
	mt.Helper()

	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName == "find" {
			return evt.Command.Lookup("filter").Document()
		}
	}

	mt.Fatal("no find command sent")
	return nil
}

func TestListCategoriesActiveParam(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("default lists everything", func(mt *mtest.T) {
		server := newMockRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0,
			"blog.categories", mtest.FirstBatch))

		w := httptest.NewRecorder()
		server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))
		require.Equal(mt, http.StatusOK, w.Code)

		filter := findCommandFilter(mt)
		_, err := filter.LookupErr("isActive")
		require.Error(mt, err, "the default listing must include inactive categories")
	})

	mt.Run("active=true keeps active categories only", func(mt *mtest.T) {
		server := newMockRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0,
			"blog.categories", mtest.FirstBatch))

		w := httptest.NewRecorder()
		server.ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/categories?active=true", nil))
		require.Equal(mt, http.StatusOK, w.Code)

		filter := findCommandFilter(mt)
		require.True(mt, filter.Lookup("isActive").Boolean())
	})
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	server := newTestRouter()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/categories"},
		{http.MethodPut, "/categories/507f1f77bcf86cd799439011"},
		{http.MethodDelete, "/categories/507f1f77bcf86cd799439011"},
		{http.MethodGet, "/categories/stats/overview"},
		{http.MethodPost, "/categories/stats/recount"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{"name":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}
}
