// Package dto request/response shapes of the category module.
package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-blog-pro/blog-api/internal/web/category/model"
)

// ListCfg filters for the flat category listing.
type ListCfg struct {
	// Featured only featured categories when true
	Featured bool
	// ActiveOnly exclude inactive categories; the listing defaults to
	// everything unless the caller asks for active ones
	ActiveOnly bool
	// ParentID filter by parent; "null" selects roots
	ParentID string
}

// NewCategoryRequest create payload; the slug is derived from the name.
type NewCategoryRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Color       string              `json:"color"`
	Icon        string              `json:"icon"`
	Image       string              `json:"image"`
	IsFeatured  bool                `json:"isFeatured"`
	ParentID    string              `json:"parentId"`
	Order       int                 `json:"order"`
	Meta        *model.CategoryMeta `json:"meta"`
}

// UpdateCategoryRequest partial update payload; nil fields stay untouched.
type UpdateCategoryRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Color       *string             `json:"color"`
	Icon        *string             `json:"icon"`
	Image       *string             `json:"image"`
	IsActive    *bool               `json:"isActive"`
	IsFeatured  *bool               `json:"isFeatured"`
	ParentID    *string             `json:"parentId"`
	Order       *int                `json:"order"`
	Meta        *model.CategoryMeta `json:"meta"`
}

// Node one node of the nested category tree.
type Node struct {
	*model.Category
	Children []*Node `json:"children"`
}

// RecentPost the projected post fields shown on a category page.
type RecentPost struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Excerpt     string             `bson:"excerpt" json:"excerpt"`
	Image       string             `bson:"image" json:"image"`
	ReadingTime int                `bson:"readingTime" json:"reading_time"`
	PublishedAt *time.Time         `bson:"publishedAt" json:"published_at"`
}

// CategoryPage category detail plus its most recent published posts.
type CategoryPage struct {
	Category    *model.Category `json:"category"`
	RecentPosts []*RecentPost   `json:"recentPosts"`
}

// StatsRow one row of the per-category stats overview.
type StatsRow struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Color         string             `bson:"color" json:"color"`
	PostsCount    int64              `bson:"postsCount" json:"postsCount"`
	TotalViews    int64              `bson:"totalViews" json:"totalViews"`
	TotalLikes    int64              `bson:"totalLikes" json:"totalLikes"`
	TotalComments int64              `bson:"totalComments" json:"totalComments"`
}
