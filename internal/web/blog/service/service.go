// Package service is the service layer of the blog module.
package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-blog-pro/blog-api/internal/web/blog/dao"
	"github.com/tech-blog-pro/blog-api/internal/web/blog/model"
	"github.com/tech-blog-pro/blog-api/library/auth"
	"github.com/tech-blog-pro/blog-api/library/jwt"
	mongoSDK "github.com/tech-blog-pro/blog-api/library/db/mongo"
)

// Blog blog service
type Blog struct {
	logger glog.Logger
	dao    *dao.Blog
}

// New new blog service, creates the collection indexes on the way up.
func New(ctx context.Context, logger glog.Logger, dao *dao.Blog) (*Blog, error) {
	s := &Blog{
		logger: logger,
		dao:    dao,
	}

	if err := s.setupIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "setup blog indexes")
	}

	return s, nil
}

func (s *Blog) setupIndexes(ctx context.Context) error {
	// unique user identity
	if _, err := s.dao.GetUsersCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}); err != nil {
		return errors.Wrap(err, "create user indexes")
	}

	// unique title/slug, plus the listing sort
	if _, err := s.dao.GetPostsCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}},
	}); err != nil {
		return errors.Wrap(err, "create post indexes")
	}

	if _, err := s.dao.GetCommentsCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "parentId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}); err != nil {
		return errors.Wrap(err, "create comment indexes")
	}

	return nil
}

// getUserClaims is an override point for tests.
var getUserClaims = func(ctx context.Context, uc *jwt.UserClaims) error {
	return auth.Instance.GetUserClaims(ctx, uc)
}

// CurrentUser resolves the auth claims in ctx to an active user document.
func (s *Blog) CurrentUser(ctx context.Context) (*model.User, error) {
	uc := new(jwt.UserClaims)
	if err := getUserClaims(ctx, uc); err != nil {
		return nil, errors.Wrap(err, "get user claims")
	}

	uid, err := primitive.ObjectIDFromHex(uc.Subject)
	if err != nil {
		return nil, errors.Wrapf(err, "parse user id %q", uc.Subject)
	}

	user, err := s.LoadUserByID(ctx, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "load user %q", uc.Subject)
	}

	if !user.IsActive {
		return nil, errors.Errorf("user %q is deactivated", user.Username)
	}

	return user, nil
}

// LoadUserByID load one user by id.
func (s *Blog) LoadUserByID(ctx context.Context, uid primitive.ObjectID) (*model.User, error) {
	user := new(model.User)
	if err := s.dao.GetUsersCol().
		FindOne(ctx, bson.M{"_id": uid}).
		Decode(user); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "user")
		}

		return nil, errors.Wrap(err, "find user")
	}

	return user, nil
}
