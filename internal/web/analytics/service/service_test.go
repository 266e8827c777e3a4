package service

import (
	"context"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/tech-blog-pro/blog-api/internal/web/analytics/dao"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/model"
	"github.com/tech-blog-pro/blog-api/library/log"
)

// mockMongo adapts the mock deployment to the handle daos expect.
type mockMongo struct {
	db *mongoLib.Database
}

func (m *mockMongo) Close(_ context.Context) error { return nil }

func (m *mockMongo) GetCol(name string) *mongoLib.Collection { return m.db.Collection(name) }

func (m *mockMongo) CurrentDB() *mongoLib.Database { return m.db }

func newMockService(mt *mtest.T) *Analytics {
	return &Analytics{
		logger: log.Logger,
		dao:    dao.New(log.Logger, &mockMongo{db: mt.DB}),
	}
}

func TestTrack(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("post view bumps the post counter", func(mt *mtest.T) {
		svc := newMockService(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		pid := primitive.NewObjectID()
		ev, err := svc.Track(context.Background(),
			&Envelope{SessionID: "sess-1", UserAgent: "curl/8.5.0"},
			&dto.TrackRequest{Type: "post_view", Page: "/posts/hello", PostID: pid.Hex()})
		require.NoError(mt, err)
		require.Equal(mt, model.EventTypePostView, ev.Type)

		var update bson.Raw
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "update" {
				update = evt.Command
			}
		}
		require.NotNil(mt, update, "the post counter should be written")
		require.Equal(mt, dao.PostsColName, update.Lookup("update").StringValue())

		stmt := update.Lookup("updates").Array().Index(0).Value().Document()
		require.Equal(mt, pid, stmt.Lookup("q", "_id").ObjectID())
		require.EqualValues(mt, 1, stmt.Lookup("u", "$inc", "stats.views").AsInt64())
	})

	mt.Run("page view leaves the post counter alone", func(mt *mtest.T) {
		svc := newMockService(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := svc.Track(context.Background(),
			&Envelope{SessionID: "sess-1"},
			&dto.TrackRequest{Type: "page_view", Page: "/about"})
		require.NoError(mt, err)

		for _, evt := range mt.GetAllStartedEvents() {
			require.NotEqual(mt, "update", evt.CommandName)
		}
	})

	mt.Run("unknown event type rejected before any write", func(mt *mtest.T) {
		svc := newMockService(mt)

		_, err := svc.Track(context.Background(),
			&Envelope{},
			&dto.TrackRequest{Type: "bogus", Page: "/home"})
		require.ErrorIs(mt, err, model.ErrInvalid)
		require.Empty(mt, mt.GetAllStartedEvents())
	})

	mt.Run("store failure stays untagged", func(mt *mtest.T) {
		svc := newMockService(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		_, err := svc.Track(context.Background(),
			&Envelope{},
			&dto.TrackRequest{Type: "page_view", Page: "/home"})
		require.Error(mt, err)
		require.False(mt, errors.Is(err, model.ErrInvalid),
			"store failures must not read as caller mistakes")
	})
}
