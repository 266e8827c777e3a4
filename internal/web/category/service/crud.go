package service

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-blog-pro/blog-api/internal/web/category/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/category/model"
	"github.com/tech-blog-pro/blog-api/library"
	mongoSDK "github.com/tech-blog-pro/blog-api/library/db/mongo"
)

// CreateCategory inserts a new category; the slug is derived from the name.
func (s *Category) CreateCategory(ctx context.Context,
	req *dto.NewCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.Wrap(model.ErrInvalid, "name is required")
	}
	if len(name) > model.MaxNameLength {
		return nil, errors.Wrapf(model.ErrInvalid, "name should be at most %d chars", model.MaxNameLength)
	}

	slug := library.Slugify(name)
	if slug == "" {
		return nil, errors.Wrap(model.ErrInvalid, "name yields an empty slug")
	}

	// proactive duplicate check for a friendly conflict message; the
	// unique index is the backstop under races
	n, err := s.dao.GetCategoriesCol().CountDocuments(ctx, bson.M{
		"$or": bson.A{
			bson.M{"name": name},
			bson.M{"slug": slug},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "check duplicate category")
	}
	if n > 0 {
		return nil, errors.Wrapf(model.ErrDuplicate, "category %q", name)
	}

	category := model.NewCategory()
	category.Name = name
	category.Slug = slug
	category.Description = strings.TrimSpace(req.Description)
	category.Icon = req.Icon
	category.Image = req.Image
	category.IsFeatured = req.IsFeatured
	category.Order = req.Order
	if req.Color != "" {
		if !model.ValidColor(req.Color) {
			return nil, errors.Wrapf(model.ErrInvalid, "invalid color %q", req.Color)
		}
		category.Color = req.Color
	}
	if req.Meta != nil {
		category.Meta = *req.Meta
	}
	if req.ParentID != "" {
		pid, err := s.loadParentID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		category.ParentID = pid
	}

	if _, err = s.dao.GetCategoriesCol().InsertOne(ctx, category); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrDuplicate, "category %q", name)
		}

		return nil, errors.Wrap(err, "insert category")
	}

	s.logger.Info("created category", zap.String("slug", category.Slug))
	return category, nil
}

// UpdateCategory applies req to the category; a name change re-derives
// the slug.
func (s *Category) UpdateCategory(ctx context.Context,
	id primitive.ObjectID, req *dto.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.loadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.Wrap(model.ErrInvalid, "name cannot be empty")
		}
		if len(name) > model.MaxNameLength {
			return nil, errors.Wrapf(model.ErrInvalid, "name should be at most %d chars", model.MaxNameLength)
		}
		category.Name = name
		category.Slug = library.Slugify(name)
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	if req.Color != nil {
		if !model.ValidColor(*req.Color) {
			return nil, errors.Wrapf(model.ErrInvalid, "invalid color %q", *req.Color)
		}
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		category.IsFeatured = *req.IsFeatured
	}
	if req.Order != nil {
		category.Order = *req.Order
	}
	if req.Meta != nil {
		category.Meta = *req.Meta
	}
	if req.ParentID != nil {
		switch *req.ParentID {
		case "", "null":
			category.ParentID = nil
		default:
			pid, err := s.loadParentID(ctx, *req.ParentID)
			if err != nil {
				return nil, err
			}
			if *pid == category.ID {
				return nil, errors.Wrap(model.ErrInvalid, "category cannot be its own parent")
			}
			category.ParentID = pid
		}
	}

	category.UpdatedAt = gutils.Clock.GetUTCNow()

	if _, err = s.dao.GetCategoriesCol().
		ReplaceOne(ctx, bson.M{"_id": category.ID}, category); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrDuplicate, "category %q", category.Name)
		}

		return nil, errors.Wrap(err, "update category")
	}

	s.logger.Info("updated category", zap.String("slug", category.Slug))
	return category, nil
}

// DeleteCategory removes the category unless posts or subcategories
// still reference it; a refusal changes nothing.
func (s *Category) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	category, err := s.loadByID(ctx, id)
	if err != nil {
		return err
	}

	posts, err := s.dao.GetPostsCol().
		CountDocuments(ctx, bson.M{"category": category.Name})
	if err != nil {
		return errors.Wrap(err, "count posts in category")
	}
	if posts > 0 {
		return errors.Wrapf(model.ErrInUse, "%d posts still reference %q", posts, category.Name)
	}

	subs, err := s.dao.GetCategoriesCol().
		CountDocuments(ctx, bson.M{"parentId": category.ID})
	if err != nil {
		return errors.Wrap(err, "count subcategories")
	}
	if subs > 0 {
		return errors.Wrapf(model.ErrInUse, "%d subcategories still reference %q", subs, category.Name)
	}

	if _, err = s.dao.GetCategoriesCol().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(err, "delete category")
	}

	s.logger.Info("deleted category", zap.String("slug", category.Slug))
	return nil
}

func (s *Category) loadByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	category := new(model.Category)
	if err := s.dao.GetCategoriesCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(category); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "category")
		}

		return nil, errors.Wrap(err, "find category")
	}

	return category, nil
}

// loadParentID validates that the referenced parent category exists.
func (s *Category) loadParentID(ctx context.Context, hex string) (*primitive.ObjectID, error) {
	pid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, errors.Wrapf(model.ErrInvalid, "parse parent id %q", hex)
	}

	if _, err = s.loadByID(ctx, pid); err != nil {
		return nil, errors.Wrap(err, "load parent category")
	}

	return &pid, nil
}
