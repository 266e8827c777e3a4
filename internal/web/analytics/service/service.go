// Package service is the service layer of analytics.
package service

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-blog-pro/blog-api/internal/web/analytics/dao"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/model"
)

// Analytics analytics service
type Analytics struct {
	logger glog.Logger
	dao    *dao.Analytics
}

// New new analytics service, creates the collection indexes on the way up.
func New(ctx context.Context, logger glog.Logger, dao *dao.Analytics) (*Analytics, error) {
	s := &Analytics{
		logger: logger,
		dao:    dao,
	}

	if err := s.setupIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "setup analytics indexes")
	}

	return s, nil
}

func (s *Analytics) setupIndexes(ctx context.Context) error {
	if _, err := s.dao.GetEventsCol().Indexes().CreateMany(ctx, []mongoLib.IndexModel{
		{
			// TTL expiry, events older than the retention window are reaped
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(model.EventRetention.Seconds())),
		},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "sessionId", Value: 1}}},
	}); err != nil {
		return errors.Wrap(err, "create event indexes")
	}

	return nil
}

// Envelope request-derived fields attached to every tracked event;
// the client never supplies these directly.
type Envelope struct {
	UserID    string
	SessionID string
	UserAgent string
	IPAddress string
	Referrer  string
}

// Track validates and persists one event. Post views additionally bump
// the denormalized view counter on the post document, best-effort.
func (s *Analytics) Track(ctx context.Context,
	env *Envelope, req *dto.TrackRequest) (*model.Event, error) {
	typ := model.EventType(req.Type)
	if !typ.Valid() {
		return nil, errors.Wrapf(model.ErrInvalid, "unknown event type %q", req.Type)
	}
	if strings.TrimSpace(req.Page) == "" {
		return nil, errors.Wrap(model.ErrInvalid, "page is required")
	}

	sessionID := env.SessionID
	if sessionID == "" {
		sessionID = "anonymous"
	}

	ev := model.NewEvent()
	ev.Type = typ
	ev.UserID = env.UserID
	ev.SessionID = sessionID
	ev.PostID = req.PostID
	ev.Page = req.Page
	ev.Action = req.Action
	ev.SearchQuery = req.SearchQuery
	ev.UserAgent = env.UserAgent
	ev.IPAddress = env.IPAddress
	ev.Device = ClassifyDevice(env.UserAgent)
	ev.Location = locationFromIP(env.IPAddress)
	ev.Duration = req.Duration
	ev.Metadata = req.Metadata
	if env.Referrer != "" {
		ev.Referrer = &env.Referrer
	}

	if _, err := s.dao.GetEventsCol().InsertOne(ctx, ev); err != nil {
		return nil, errors.Wrap(err, "insert event")
	}

	if typ == model.EventTypePostView && req.PostID != "" {
		s.bumpPostViews(ctx, req.PostID)
	}

	return ev, nil
}

// bumpPostViews increments the post's denormalized view counter. A
// failure here never fails the track call, the event is already stored.
func (s *Analytics) bumpPostViews(ctx context.Context, postID string) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		s.logger.Warn("invalid post id on post_view", zap.String("postId", postID))
		return
	}

	if _, err = s.dao.GetPostsCol().UpdateByID(ctx, pid,
		bson.M{"$inc": bson.M{"stats.views": 1}}); err != nil {
		s.logger.Warn("bump post views", zap.Error(err), zap.String("postId", postID))
	}
}
