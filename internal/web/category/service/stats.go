package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-blog-pro/blog-api/internal/web/category/dto"
)

// StatsOverview joins every category against its posts and reports
// aggregate counters, most-populated category first.
func (s *Category) StatsOverview(ctx context.Context) ([]*dto.StatsRow, error) {
	cur, err := s.dao.GetCategoriesCol().Aggregate(ctx, bson.A{
		bson.M{"$lookup": bson.M{
			"from":         "posts",
			"localField":   "name",
			"foreignField": "category",
			"as":           "posts",
		}},
		bson.M{"$project": bson.M{
			"name":          1,
			"slug":          1,
			"color":         1,
			"postsCount":    bson.M{"$size": "$posts"},
			"totalViews":    bson.M{"$sum": "$posts.stats.views"},
			"totalLikes":    bson.M{"$sum": "$posts.stats.likes"},
			"totalComments": bson.M{"$sum": "$posts.stats.comments"},
		}},
		bson.M{"$sort": bson.M{"postsCount": -1}},
	}, options.Aggregate().SetAllowDiskUse(true))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate category stats")
	}
	defer cur.Close(ctx) //nolint:errcheck

	rows := []*dto.StatsRow{}
	if err = cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "load category stats")
	}

	return rows, nil
}

// RecountStats recomputes the denormalized per-category counters from
// the posts collection and persists them. The counters drift because
// post writes only bump them best-effort.
func (s *Category) RecountStats(ctx context.Context) ([]*dto.StatsRow, error) {
	rows, err := s.StatsOverview(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "compute category stats")
	}

	now := gutils.Clock.GetUTCNow()
	for _, row := range rows {
		if _, err = s.dao.GetCategoriesCol().UpdateByID(ctx, row.ID, bson.M{
			"$set": bson.M{
				"stats.postsCount": row.PostsCount,
				"stats.viewsCount": row.TotalViews,
				"updatedAt":        now,
			},
		}); err != nil {
			return nil, errors.Wrapf(err, "persist stats of category %q", row.Name)
		}
	}

	s.logger.Info("recounted category stats", zap.Int("categories", len(rows)))
	return rows, nil
}
