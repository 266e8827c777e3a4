package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/tech-blog-pro/blog-api/internal/web/analytics/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/model"
)

const (
	topBucketsLimit = 10
	dailyWindow     = 30 * 24 * time.Hour
)

// Dashboard assembles the admin dashboard payload. The overview counts
// are independent and run concurrently; the aggregations run after.
func (s *Analytics) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	now := gutils.Clock.GetUTCNow()
	dashboard := new(dto.Dashboard)

	var pool errgroup.Group
	for _, task := range []struct {
		dst    *int64
		filter bson.M
	}{
		{&dashboard.Overview.TotalViews,
			bson.M{"type": model.EventTypePageView}},
		{&dashboard.Overview.ViewsLast30Days,
			bson.M{"type": model.EventTypePageView, "timestamp": bson.M{"$gte": now.Add(-30 * 24 * time.Hour)}}},
		{&dashboard.Overview.ViewsLast7Days,
			bson.M{"type": model.EventTypePageView, "timestamp": bson.M{"$gte": now.Add(-7 * 24 * time.Hour)}}},
		{&dashboard.Overview.ViewsLast24Hours,
			bson.M{"type": model.EventTypePageView, "timestamp": bson.M{"$gte": now.Add(-24 * time.Hour)}}},
		{&dashboard.Overview.PostViews,
			bson.M{"type": model.EventTypePostView}},
		{&dashboard.Overview.PostViewsLast30Days,
			bson.M{"type": model.EventTypePostView, "timestamp": bson.M{"$gte": now.Add(-30 * 24 * time.Hour)}}},
		{&dashboard.Overview.UserActions,
			bson.M{"type": model.EventTypeUserAction}},
		{&dashboard.Overview.Searches,
			bson.M{"type": model.EventTypeSearch}},
	} {
		pool.Go(func() error {
			n, err := s.dao.GetEventsCol().CountDocuments(ctx, task.filter)
			if err != nil {
				return errors.Wrap(err, "count events")
			}

			*task.dst = n
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, errors.Wrap(err, "load overview counts")
	}

	var err error
	if dashboard.TopPosts, err = s.viewBuckets(ctx, bson.A{
		bson.M{"$match": bson.M{"type": model.EventTypePostView, "postId": bson.M{"$ne": nil}}},
		bson.M{"$group": bson.M{"_id": "$postId", "views": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"views": -1}},
		bson.M{"$limit": topBucketsLimit},
	}); err != nil {
		return nil, errors.Wrap(err, "load top posts")
	}

	if dashboard.TopPages, err = s.viewBuckets(ctx, bson.A{
		bson.M{"$match": bson.M{"type": model.EventTypePageView}},
		bson.M{"$group": bson.M{"_id": "$page", "views": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"views": -1}},
		bson.M{"$limit": topBucketsLimit},
	}); err != nil {
		return nil, errors.Wrap(err, "load top pages")
	}

	if dashboard.DeviceStats, err = s.groupBuckets(ctx, deviceStatsPipeline()); err != nil {
		return nil, errors.Wrap(err, "load device stats")
	}

	if dashboard.CountryStats, err = s.groupBuckets(ctx, countryStatsPipeline()); err != nil {
		return nil, errors.Wrap(err, "load country stats")
	}

	if dashboard.DailyViews, err = s.viewBuckets(ctx,
		dailyViewsPipeline(dashboardDailyMatch(now)),
	); err != nil {
		return nil, errors.Wrap(err, "load daily views")
	}

	return dashboard, nil
}

// PostAnalytics assembles the per-post analytics payload.
func (s *Analytics) PostAnalytics(ctx context.Context, postID string) (*dto.PostAnalytics, error) {
	now := gutils.Clock.GetUTCNow()
	result := new(dto.PostAnalytics)

	var err error
	if result.ViewsOverTime, err = s.viewBuckets(ctx,
		dailyViewsPipeline(bson.M{
			"type":      model.EventTypePostView,
			"postId":    postID,
			"timestamp": bson.M{"$gte": now.Add(-dailyWindow)},
		}),
	); err != nil {
		return nil, errors.Wrap(err, "load views over time")
	}

	if result.Engagement, err = s.groupBuckets(ctx, bson.A{
		bson.M{"$match": bson.M{
			"type":   model.EventTypeUserAction,
			"postId": postID,
			"action": bson.M{"$in": bson.A{"like", "comment", "share"}},
		}},
		bson.M{"$group": bson.M{"_id": "$action", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
	}); err != nil {
		return nil, errors.Wrap(err, "load engagement")
	}

	if result.Referrers, err = s.groupBuckets(ctx, referrersPipeline(postID)); err != nil {
		return nil, errors.Wrap(err, "load referrers")
	}

	return result, nil
}

// Device and country breakdowns only count page views; post views and
// user actions carry the same device fields but would double-count
// visitors.
func deviceStatsPipeline() bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"type": model.EventTypePageView}},
		bson.M{"$group": bson.M{"_id": "$device.type", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
	}
}

func countryStatsPipeline() bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"type": model.EventTypePageView, "location.country": bson.M{"$ne": nil}}},
		bson.M{"$group": bson.M{"_id": "$location.country", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
		bson.M{"$limit": topBucketsLimit},
	}
}

// referrersPipeline ranks referrer sources for one post's views.
func referrersPipeline(postID string) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{
			"type":     model.EventTypePostView,
			"postId":   postID,
			"referrer": bson.M{"$ne": nil},
		}},
		bson.M{"$group": bson.M{"_id": "$referrer", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
		bson.M{"$limit": topBucketsLimit},
	}
}

// dashboardDailyMatch selects the page views charted per day; post
// views get their own chart on the post analytics page.
func dashboardDailyMatch(now time.Time) bson.M {
	return bson.M{
		"type":      model.EventTypePageView,
		"timestamp": bson.M{"$gte": now.Add(-dailyWindow)},
	}
}

// dailyViewsPipeline buckets matching events into per-day counts over
// the trailing window, oldest day first.
func dailyViewsPipeline(match bson.M) bson.A {
	return bson.A{
		bson.M{"$match": match},
		bson.M{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$timestamp",
			}},
			"views": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"_id": 1}},
	}
}

func (s *Analytics) viewBuckets(ctx context.Context, pipeline bson.A) ([]*dto.ViewCount, error) {
	cur, err := s.dao.GetEventsCol().Aggregate(ctx, pipeline,
		options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate events")
	}
	defer cur.Close(ctx) //nolint:errcheck

	buckets := []*dto.ViewCount{}
	if err = cur.All(ctx, &buckets); err != nil {
		return nil, errors.Wrap(err, "load buckets")
	}

	return buckets, nil
}

func (s *Analytics) groupBuckets(ctx context.Context, pipeline bson.A) ([]*dto.GroupCount, error) {
	cur, err := s.dao.GetEventsCol().Aggregate(ctx, pipeline,
		options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate events")
	}
	defer cur.Close(ctx) //nolint:errcheck

	buckets := []*dto.GroupCount{}
	if err = cur.All(ctx, &buckets); err != nil {
		return nil, errors.Wrap(err, "load buckets")
	}

	return buckets, nil
}
