// Package dao is the data access layer of the category module.
package dao

import (
	glog "github.com/Laisky/go-utils/v6/log"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/tech-blog-pro/blog-api/library/db/mongo"
)

const (
	// CategoriesColName categories collection
	CategoriesColName = "categories"
	// PostsColName posts collection, read for delete guards and stats
	PostsColName = "posts"
)

// Category dao type
type Category struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Category {
	return &Category{
		logger: logger,
		db:     db,
	}
}

// GetCategoriesCol get categories collection
func (d *Category) GetCategoriesCol() *mongoLib.Collection {
	return d.db.GetCol(CategoriesColName)
}

// GetPostsCol get posts collection
func (d *Category) GetPostsCol() *mongoLib.Collection {
	return d.db.GetCol(PostsColName)
}
