// Package dao is the data access layer of analytics.
package dao

import (
	glog "github.com/Laisky/go-utils/v6/log"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/tech-blog-pro/blog-api/library/db/mongo"
)

const (
	// EventsColName analytics events collection
	EventsColName = "analytics"
	// PostsColName posts collection, written for the view-counter side effect
	PostsColName = "posts"
)

// Analytics dao type
type Analytics struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Analytics {
	return &Analytics{
		logger: logger,
		db:     db,
	}
}

// GetEventsCol get analytics events collection
func (d *Analytics) GetEventsCol() *mongoLib.Collection {
	return d.db.GetCol(EventsColName)
}

// GetPostsCol get posts collection
func (d *Analytics) GetPostsCol() *mongoLib.Collection {
	return d.db.GetCol(PostsColName)
}
