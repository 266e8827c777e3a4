// Package model contains the persisted category documents.
package model

import (
	"regexp"
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxNameLength upper bound on category names
const MaxNameLength = 50

var colorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// ValidColor reports whether color is a 3- or 6-digit hex color.
func ValidColor(color string) bool {
	return colorRe.MatchString(color)
}

// Category one node of the category tree. Root categories carry a nil
// ParentID.
type Category struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Slug        string              `bson:"slug" json:"slug"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Color       string              `bson:"color" json:"color"`
	Icon        string              `bson:"icon,omitempty" json:"icon,omitempty"`
	Image       string              `bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool                `bson:"isActive" json:"is_active"`
	IsFeatured  bool                `bson:"isFeatured" json:"is_featured"`
	ParentID    *primitive.ObjectID `bson:"parentId,omitempty" json:"parent_id,omitempty"`
	Order       int                 `bson:"order" json:"order"`
	Meta        CategoryMeta        `bson:"meta" json:"meta"`
	Stats       CategoryStats       `bson:"stats" json:"stats"`
	CreatedAt   time.Time           `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updated_at"`
}

// CategoryMeta SEO fields
type CategoryMeta struct {
	Title       string   `bson:"title,omitempty" json:"title,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Keywords    []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

// CategoryStats denormalized counters, reconciled on demand.
type CategoryStats struct {
	PostsCount int `bson:"postsCount" json:"posts_count"`
	ViewsCount int `bson:"viewsCount" json:"views_count"`
}

// NewCategory create a new active category stamped with the shared clock.
func NewCategory() *Category {
	now := gutils.Clock.GetUTCNow()
	return &Category{
		ID:        primitive.NewObjectID(),
		Color:     "#007bff",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
