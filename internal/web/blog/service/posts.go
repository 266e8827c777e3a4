package service

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-blog-pro/blog-api/internal/web/blog/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/blog/model"
	"github.com/tech-blog-pro/blog-api/library"
	mongoSDK "github.com/tech-blog-pro/blog-api/library/db/mongo"
)

const maxPostPageSize = 100

// LoadPosts lists published posts, newest first by publish time.
func (s *Blog) LoadPosts(ctx context.Context, cfg *dto.PostCfg) ([]*model.Post, error) {
	if cfg.Size <= 0 || cfg.Size > maxPostPageSize {
		return nil, errors.Wrapf(model.ErrInvalid, "size should be in (0, %d]", maxPostPageSize)
	}
	if cfg.Page < 0 {
		return nil, errors.Wrap(model.ErrInvalid, "page should not be negative")
	}

	query := bson.M{
		"status":      model.PostStatusPublished,
		"isPublished": true,
	}
	if cfg.Category != "" {
		query["category"] = cfg.Category
	}
	if cfg.Tag != "" {
		query["tags"] = cfg.Tag
	}
	if cfg.Slug != "" {
		query["slug"] = cfg.Slug
	}

	cur, err := s.dao.GetPostsCol().Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}}),
		options.Find().SetSkip(int64(cfg.Page*cfg.Size)),
		options.Find().SetLimit(int64(cfg.Size)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}
	defer cur.Close(ctx) //nolint:errcheck

	posts := []*model.Post{}
	if err = cur.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "load posts")
	}

	return posts, nil
}

// LoadPostBySlug loads one post. Drafts and archived posts are only
// visible to their author or an admin; viewer may be nil for anonymous.
func (s *Blog) LoadPostBySlug(ctx context.Context, slug string, viewer *model.User) (*model.Post, error) {
	post := new(model.Post)
	if err := s.dao.GetPostsCol().
		FindOne(ctx, bson.M{"slug": slug}).
		Decode(post); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "post")
		}

		return nil, errors.Wrap(err, "find post")
	}

	if post.Status != model.PostStatusPublished {
		if viewer == nil || (!viewer.IsAdmin && viewer.ID != post.UserID) {
			return nil, errors.Wrap(model.ErrNotFound, "post")
		}
	}

	return post, nil
}

// CreatePost inserts a new draft authored by user.
func (s *Blog) CreatePost(ctx context.Context,
	user *model.User, req *dto.NewPostRequest) (*model.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.Wrap(model.ErrInvalid, "title is required")
	}

	slug := library.Slugify(title)
	if slug == "" {
		return nil, errors.Wrap(model.ErrInvalid, "title yields an empty slug")
	}

	category := req.Category
	if category == "" {
		category = "uncategorized"
	}
	if !model.ValidCategory(category) {
		return nil, errors.Wrapf(model.ErrInvalid, "unknown category %q", category)
	}

	// proactive duplicate check for a friendly conflict message; the
	// unique index is the backstop under races
	n, err := s.dao.GetPostsCol().CountDocuments(ctx, bson.M{
		"$or": bson.A{
			bson.M{"title": title},
			bson.M{"slug": slug},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "check duplicate post")
	}
	if n > 0 {
		return nil, errors.Wrapf(model.ErrDuplicate, "post %q", title)
	}

	post := model.NewPost()
	post.UserID = user.ID
	post.Title = title
	post.Slug = slug
	post.Markdown = req.Markdown
	post.Content = RenderMarkdown([]byte(req.Markdown))
	post.Excerpt = strings.TrimSpace(req.Excerpt)
	post.Image = req.Image
	post.Category = category
	post.Tags = req.Tags
	post.ReadingTime = model.EstimateReadingTime(library.WordCount(req.Markdown))

	if _, err = s.dao.GetPostsCol().InsertOne(ctx, post); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrDuplicate, "post %q", title)
		}

		return nil, errors.Wrap(err, "insert post")
	}

	// best-effort counter bump, drift is reconciled on demand
	if _, err = s.dao.GetUsersCol().UpdateByID(ctx, user.ID,
		bson.M{"$inc": bson.M{"stats.postsCount": 1}}); err != nil {
		s.logger.Warn("bump user posts count", zap.Error(err),
			zap.String("user", user.Username))
	}

	s.logger.Info("created post",
		zap.String("slug", post.Slug), zap.String("user", user.Username))
	return post, nil
}

// UpdatePost applies req to the post. The transition to published sets
// publishedAt exactly once.
func (s *Blog) UpdatePost(ctx context.Context,
	user *model.User, id primitive.ObjectID, req *dto.UpdatePostRequest) (*model.Post, error) {
	post := new(model.Post)
	if err := s.dao.GetPostsCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(post); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "post")
		}

		return nil, errors.Wrap(err, "find post")
	}

	if !user.IsAdmin && post.UserID != user.ID {
		return nil, errors.Wrap(model.ErrForbidden, "post does not belong to this user")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errors.Wrap(model.ErrInvalid, "title cannot be empty")
		}
		post.Title = title
		post.Slug = library.Slugify(title)
	}
	if req.Markdown != nil {
		post.Markdown = *req.Markdown
		post.Content = RenderMarkdown([]byte(*req.Markdown))
		post.ReadingTime = model.EstimateReadingTime(library.WordCount(*req.Markdown))
	}
	if req.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Image != nil {
		post.Image = *req.Image
	}
	if req.Category != nil {
		if !model.ValidCategory(*req.Category) {
			return nil, errors.Wrapf(model.ErrInvalid, "unknown category %q", *req.Category)
		}
		post.Category = *req.Category
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}

	if req.Status != nil {
		status := model.PostStatus(*req.Status)
		if !status.Valid() {
			return nil, errors.Wrapf(model.ErrInvalid, "unknown status %q", *req.Status)
		}

		if status == model.PostStatusPublished {
			post.MarkPublished()
		} else {
			post.Status = status
		}
	}

	post.UpdatedAt = gutils.Clock.GetUTCNow()

	if _, err := s.dao.GetPostsCol().
		ReplaceOne(ctx, bson.M{"_id": post.ID}, post); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrDuplicate, "post %q", post.Title)
		}

		return nil, errors.Wrap(err, "update post")
	}

	s.logger.Info("updated post",
		zap.String("slug", post.Slug), zap.String("user", user.Username))
	return post, nil
}

// DeletePost removes the post; only the author or an admin may.
func (s *Blog) DeletePost(ctx context.Context,
	user *model.User, id primitive.ObjectID) error {
	post := new(model.Post)
	if err := s.dao.GetPostsCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(post); err != nil {
		if mongoSDK.NotFound(err) {
			return errors.Wrap(model.ErrNotFound, "post")
		}

		return errors.Wrap(err, "find post")
	}

	if !user.IsAdmin && post.UserID != user.ID {
		return errors.Wrap(model.ErrForbidden, "post does not belong to this user")
	}

	if _, err := s.dao.GetPostsCol().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(err, "delete post")
	}

	if _, err := s.dao.GetUsersCol().UpdateByID(ctx, post.UserID,
		bson.M{"$inc": bson.M{"stats.postsCount": -1}}); err != nil {
		s.logger.Warn("decrease user posts count", zap.Error(err),
			zap.String("user", user.Username))
	}

	s.logger.Info("deleted post",
		zap.String("slug", post.Slug), zap.String("user", user.Username))
	return nil
}
