// Package dao is the data access layer of the blog module.
package dao

import (
	glog "github.com/Laisky/go-utils/v6/log"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/tech-blog-pro/blog-api/library/db/mongo"
)

const (
	// UsersColName users collection
	UsersColName = "users"
	// PostsColName posts collection
	PostsColName = "posts"
	// CommentsColName comments collection
	CommentsColName = "comments"
)

// Blog dao type
type Blog struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Blog {
	return &Blog{
		logger: logger,
		db:     db,
	}
}

// GetUsersCol get users collection
func (d *Blog) GetUsersCol() *mongoLib.Collection {
	return d.db.GetCol(UsersColName)
}

// GetPostsCol get posts collection
func (d *Blog) GetPostsCol() *mongoLib.Collection {
	return d.db.GetCol(PostsColName)
}

// GetCommentsCol get comments collection
func (d *Blog) GetCommentsCol() *mongoLib.Collection {
	return d.db.GetCol(CommentsColName)
}
