package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/tech-blog-pro/blog-api/internal/web/category/dao"
	"github.com/tech-blog-pro/blog-api/internal/web/category/model"
	"github.com/tech-blog-pro/blog-api/library/log"
)

// mockMongo adapts the mock deployment to the handle daos expect.
type mockMongo struct {
	db *mongoLib.Database
}

func (m *mockMongo) Close(_ context.Context) error { return nil }

func (m *mockMongo) GetCol(name string) *mongoLib.Collection { return m.db.Collection(name) }

func (m *mockMongo) CurrentDB() *mongoLib.Database { return m.db }

func newMockService(mt *mtest.T) *Category {
	return &Category{
		logger: log.Logger,
		dao:    dao.New(log.Logger, &mockMongo{db: mt.DB}),
	}
}

func categoryDoc(id primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Golang"},
		{Key: "slug", Value: "golang"},
		{Key: "isActive", Value: true},
	}
}

func countResponse(n int) bson.D {
	return mtest.CreateCursorResponse(0, "blog.categories",
		mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
}

func requireNoDelete(mt *mtest.T) {
	mt.Helper()

	for _, evt := range mt.GetAllStartedEvents() {
		require.NotEqual(mt, "delete", evt.CommandName,
			"a refused delete must change nothing")
	}
}

func TestDeleteCategory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("refused while posts reference it", func(mt *mtest.T) {
		svc := newMockService(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.categories", mtest.FirstBatch, categoryDoc(id)),
			countResponse(3),
		)

		err := svc.DeleteCategory(context.Background(), id)
		require.ErrorIs(mt, err, model.ErrInUse)
		requireNoDelete(mt)
	})

	mt.Run("refused while subcategories reference it", func(mt *mtest.T) {
		svc := newMockService(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.categories", mtest.FirstBatch, categoryDoc(id)),
			countResponse(0),
			countResponse(2),
		)

		err := svc.DeleteCategory(context.Background(), id)
		require.ErrorIs(mt, err, model.ErrInUse)
		requireNoDelete(mt)
	})

	mt.Run("unreferenced category removed", func(mt *mtest.T) {
		svc := newMockService(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.categories", mtest.FirstBatch, categoryDoc(id)),
			countResponse(0),
			countResponse(0),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, svc.DeleteCategory(context.Background(), id))

		var deleted bool
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "delete" {
				deleted = true
			}
		}
		require.True(mt, deleted)
	})

	mt.Run("missing category reads as not found", func(mt *mtest.T) {
		svc := newMockService(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.categories", mtest.FirstBatch),
		)

		err := svc.DeleteCategory(context.Background(), primitive.NewObjectID())
		require.ErrorIs(mt, err, model.ErrNotFound)
		requireNoDelete(mt)
	})
}
