package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-blog-pro/blog-api/internal/web/blog/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/blog/model"
	mongoSDK "github.com/tech-blog-pro/blog-api/library/db/mongo"
)

const maxCommentContentLength = 1000

// buildCommentTree organizes a flat comment list into reply threads.
func buildCommentTree(comments []*model.Comment) []*model.Comment {
	byID := make(map[primitive.ObjectID]*model.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	roots := []*model.Comment{}
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}

		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
		// orphaned replies (parent hidden or deleted) are dropped
	}

	return roots
}

// LoadComments returns the approved comment thread of a post, newest
// roots first.
func (s *Blog) LoadComments(ctx context.Context, postSlug string) ([]*model.Comment, error) {
	post, err := s.LoadPostBySlug(ctx, postSlug, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "load post %q", postSlug)
	}

	cur, err := s.dao.GetCommentsCol().Find(ctx, bson.M{
		"postId": post.ID,
		"status": model.CommentStatusApproved,
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find comments")
	}
	defer cur.Close(ctx) //nolint:errcheck

	comments := []*model.Comment{}
	if err = cur.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "load comments")
	}

	return buildCommentTree(comments), nil
}

// CreateComment attaches a new approved comment to the post and bumps
// the denormalized counters as best-effort secondary writes.
func (s *Blog) CreateComment(ctx context.Context,
	user *model.User, postSlug string, req *dto.NewCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errors.Wrap(model.ErrInvalid, "comment content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentContentLength {
		return nil, errors.Wrapf(model.ErrInvalid, "comment exceeds %d characters", maxCommentContentLength)
	}

	post, err := s.LoadPostBySlug(ctx, postSlug, user)
	if err != nil {
		return nil, errors.Wrapf(err, "load post %q", postSlug)
	}

	comment := model.NewComment()
	comment.Content = content
	comment.PostID = post.ID
	comment.UserID = user.ID

	if req.ParentID != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			return nil, errors.Wrapf(model.ErrInvalid, "parse parent id %q", req.ParentID)
		}

		parent := new(model.Comment)
		if err = s.dao.GetCommentsCol().
			FindOne(ctx, bson.M{"_id": parentID, "postId": post.ID}).
			Decode(parent); err != nil {
			if mongoSDK.NotFound(err) {
				return nil, errors.Wrap(model.ErrNotFound, "parent comment")
			}

			return nil, errors.Wrap(err, "find parent comment")
		}
		comment.ParentID = &parentID
	}

	comment.RecountReactions()
	if _, err = s.dao.GetCommentsCol().InsertOne(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "insert comment")
	}

	if _, err = s.dao.GetPostsCol().UpdateByID(ctx, post.ID,
		bson.M{"$inc": bson.M{"stats.comments": 1}}); err != nil {
		s.logger.Warn("bump post comments count", zap.Error(err),
			zap.String("post", post.Slug))
	}
	if _, err = s.dao.GetUsersCol().UpdateByID(ctx, user.ID,
		bson.M{"$inc": bson.M{"stats.commentsCount": 1}}); err != nil {
		s.logger.Warn("bump user comments count", zap.Error(err),
			zap.String("user", user.Username))
	}

	return comment, nil
}

// ToggleCommentLike toggles user's like on the comment; any dislike by
// the same user is removed. Counts are recomputed from the arrays
// before the save.
func (s *Blog) ToggleCommentLike(ctx context.Context,
	user *model.User, commentID primitive.ObjectID) (*model.Comment, error) {
	comment := new(model.Comment)
	if err := s.dao.GetCommentsCol().
		FindOne(ctx, bson.M{"_id": commentID}).
		Decode(comment); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "comment")
		}

		return nil, errors.Wrap(err, "find comment")
	}

	uid := user.ID.Hex()
	comment.Likes = toggleReaction(comment.Likes, uid)
	comment.Dislikes = removeReaction(comment.Dislikes, uid)
	comment.RecountReactions()
	comment.UpdatedAt = gutils.Clock.GetUTCNow()

	if _, err := s.dao.GetCommentsCol().
		ReplaceOne(ctx, bson.M{"_id": comment.ID}, comment); err != nil {
		return nil, errors.Wrap(err, "update comment")
	}

	return comment, nil
}

// DeleteComment marks the comment deleted; only the author or an admin may.
func (s *Blog) DeleteComment(ctx context.Context,
	user *model.User, commentID primitive.ObjectID) error {
	comment := new(model.Comment)
	if err := s.dao.GetCommentsCol().
		FindOne(ctx, bson.M{"_id": commentID}).
		Decode(comment); err != nil {
		if mongoSDK.NotFound(err) {
			return errors.Wrap(model.ErrNotFound, "comment")
		}

		return errors.Wrap(err, "find comment")
	}

	if !user.IsAdmin && comment.UserID != user.ID {
		return errors.Wrap(model.ErrForbidden, "comment does not belong to this user")
	}

	if _, err := s.dao.GetCommentsCol().UpdateByID(ctx, comment.ID, bson.M{
		"$set": bson.M{
			"status":    model.CommentStatusDeleted,
			"updatedAt": gutils.Clock.GetUTCNow(),
		},
	}); err != nil {
		return errors.Wrap(err, "delete comment")
	}

	if _, err := s.dao.GetPostsCol().UpdateByID(ctx, comment.PostID,
		bson.M{"$inc": bson.M{"stats.comments": -1}}); err != nil {
		s.logger.Warn("decrease post comments count", zap.Error(err))
	}

	return nil
}

func toggleReaction(ids []string, uid string) []string {
	for i, id := range ids {
		if id == uid {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return append(ids, uid)
}

func removeReaction(ids []string, uid string) []string {
	for i, id := range ids {
		if id == uid {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
