// Package service is the service layer of the category module.
package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-blog-pro/blog-api/internal/web/category/dao"
	"github.com/tech-blog-pro/blog-api/internal/web/category/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/category/model"
	mongoSDK "github.com/tech-blog-pro/blog-api/library/db/mongo"
)

const recentPostsLimit = 10

// Category category service
type Category struct {
	logger glog.Logger
	dao    *dao.Category
}

// New new category service, creates the collection indexes on the way up.
func New(ctx context.Context, logger glog.Logger, dao *dao.Category) (*Category, error) {
	s := &Category{
		logger: logger,
		dao:    dao,
	}

	if err := s.setupIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "setup category indexes")
	}

	return s, nil
}

func (s *Category) setupIndexes(ctx context.Context) error {
	if _, err := s.dao.GetCategoriesCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "parentId", Value: 1}, {Key: "order", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "isFeatured", Value: 1}}},
	}); err != nil {
		return errors.Wrap(err, "create category indexes")
	}

	return nil
}

// LoadCategories lists categories flat, order then name ascending.
func (s *Category) LoadCategories(ctx context.Context, cfg *dto.ListCfg) ([]*model.Category, error) {
	query := bson.M{}
	if cfg.ActiveOnly {
		query["isActive"] = true
	}
	if cfg.Featured {
		query["isFeatured"] = true
	}
	switch cfg.ParentID {
	case "":
	case "null":
		query["parentId"] = nil
	default:
		pid, err := primitive.ObjectIDFromHex(cfg.ParentID)
		if err != nil {
			return nil, errors.Wrapf(model.ErrInvalid, "parse parent id %q", cfg.ParentID)
		}
		query["parentId"] = pid
	}

	cur, err := s.dao.GetCategoriesCol().Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find categories")
	}
	defer cur.Close(ctx) //nolint:errcheck

	categories := []*model.Category{}
	if err = cur.All(ctx, &categories); err != nil {
		return nil, errors.Wrap(err, "load categories")
	}

	return categories, nil
}

// LoadBySlug loads one active category and its most recent published posts.
func (s *Category) LoadBySlug(ctx context.Context, slug string) (*dto.CategoryPage, error) {
	category := new(model.Category)
	if err := s.dao.GetCategoriesCol().
		FindOne(ctx, bson.M{"slug": slug, "isActive": true}).
		Decode(category); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "category")
		}

		return nil, errors.Wrap(err, "find category")
	}

	cur, err := s.dao.GetPostsCol().Find(ctx,
		bson.M{"category": category.Name, "status": "published"},
		options.Find().
			SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
			SetLimit(recentPostsLimit).
			SetProjection(bson.M{
				"title":       1,
				"slug":        1,
				"excerpt":     1,
				"image":       1,
				"readingTime": 1,
				"publishedAt": 1,
			}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find recent posts")
	}
	defer cur.Close(ctx) //nolint:errcheck

	posts := []*dto.RecentPost{}
	if err = cur.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "load recent posts")
	}

	return &dto.CategoryPage{
		Category:    category,
		RecentPosts: posts,
	}, nil
}

// Hierarchy builds the nested tree from the flat active listing.
// Malformed parent chains that loop back on themselves are cut instead
// of recursed into.
func (s *Category) Hierarchy(ctx context.Context) ([]*dto.Node, error) {
	categories, err := s.LoadCategories(ctx, &dto.ListCfg{ActiveOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "load categories")
	}

	return buildHierarchy(categories), nil
}

func buildHierarchy(categories []*model.Category) []*dto.Node {
	children := map[primitive.ObjectID][]*model.Category{}
	roots := []*model.Category{}
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var attach func(c *model.Category, visited map[primitive.ObjectID]bool) *dto.Node
	attach = func(c *model.Category, visited map[primitive.ObjectID]bool) *dto.Node {
		visited[c.ID] = true
		node := &dto.Node{Category: c, Children: []*dto.Node{}}
		for _, child := range children[c.ID] {
			if visited[child.ID] {
				// the parent chain loops, skip the repeated node
				continue
			}
			node.Children = append(node.Children, attach(child, visited))
		}

		return node
	}

	tree := []*dto.Node{}
	for _, root := range roots {
		tree = append(tree, attach(root, map[primitive.ObjectID]bool{}))
	}

	return tree
}
