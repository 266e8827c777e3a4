package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tech-blog-pro/blog-api/internal/web/analytics/model"
)

func matchStage(t *testing.T, pipeline bson.A) bson.M {
	t.Helper()

	stage, ok := pipeline[0].(bson.M)
	require.True(t, ok)
	match, ok := stage["$match"].(bson.M)
	require.True(t, ok, "first stage should be a $match")
	return match
}

// The breakdown aggregations each scope to one event type; mixing
// types would double-count visitors who both land on a page and open
// a post.
func TestDashboardPipelineScoping(t *testing.T) {
	t.Parallel()

	t.Run("device stats only count page views", func(t *testing.T) {
		t.Parallel()

		match := matchStage(t, deviceStatsPipeline())
		require.Equal(t, model.EventTypePageView, match["type"])
	})

	t.Run("country stats only count page views", func(t *testing.T) {
		t.Parallel()

		match := matchStage(t, countryStatsPipeline())
		require.Equal(t, model.EventTypePageView, match["type"])
		require.Equal(t, bson.M{"$ne": nil}, match["location.country"])
	})

	t.Run("daily views only chart page views", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		match := dashboardDailyMatch(now)
		require.Equal(t, model.EventTypePageView, match["type"])
		require.Equal(t, bson.M{"$gte": now.Add(-dailyWindow)}, match["timestamp"])
	})

	t.Run("referrers only count views of the post", func(t *testing.T) {
		t.Parallel()

		match := matchStage(t, referrersPipeline("507f1f77bcf86cd799439011"))
		require.Equal(t, model.EventTypePostView, match["type"])
		require.Equal(t, "507f1f77bcf86cd799439011", match["postId"])
		require.Equal(t, bson.M{"$ne": nil}, match["referrer"])
	})
}
