package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStatus publication state of a post
type PostStatus string

const (
	// PostStatusDraft not yet published
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished visible to readers
	PostStatusPublished PostStatus = "published"
	// PostStatusArchived retired from the public listing
	PostStatusArchived PostStatus = "archived"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}

	return false
}

// PostCategories the fixed category enum posts may use.
var PostCategories = []string{
	"technology", "programming", "design", "business",
	"lifestyle", "tutorial", "news", "uncategorized",
}

// wordsPerMinute feeds the derived reading time.
const wordsPerMinute = 200

// Post authored content
type Post struct {
	// ID unique identifier for the post
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt time when the post was created
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	// UpdatedAt time when the post was last modified
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
	// UserID id of the author
	UserID primitive.ObjectID `bson:"userId" json:"user_id"`
	// Title unique human-readable title
	Title string `bson:"title" json:"title"`
	// Slug unique URL identifier derived from the title
	Slug string `bson:"slug" json:"slug"`
	// Content rendered HTML body
	Content string `bson:"content" json:"content"`
	// Markdown raw markdown source of the body
	Markdown string `bson:"markdown" json:"markdown"`
	// Excerpt short summary for listings
	Excerpt string `bson:"excerpt" json:"excerpt"`
	// Image cover image URL
	Image string `bson:"image" json:"image"`
	// Category one of PostCategories
	Category string `bson:"category" json:"category"`
	// Tags free-form labels
	Tags []string `bson:"tags" json:"tags"`
	// Status publication state {draft, published, archived}
	Status PostStatus `bson:"status" json:"status"`
	// IsFeatured pinned on the landing page
	IsFeatured bool `bson:"isFeatured" json:"is_featured"`
	// IsPublished true once the post went public
	IsPublished bool `bson:"isPublished" json:"is_published"`
	// PublishedAt set exactly once, on the first transition to published
	PublishedAt *time.Time `bson:"publishedAt,omitempty" json:"published_at,omitempty"`
	// ReadingTime derived minutes, ceil(words/200)
	ReadingTime int `bson:"readingTime" json:"reading_time"`
	// Seo meta fields for search engines
	Seo PostSeo `bson:"seo" json:"seo"`
	// Stats denormalized counters, views bumped by analytics tracking
	Stats PostStats `bson:"stats" json:"stats"`
}

// PostSeo search engine meta fields.
type PostSeo struct {
	MetaTitle       string   `bson:"metaTitle,omitempty" json:"meta_title,omitempty"`
	MetaDescription string   `bson:"metaDescription,omitempty" json:"meta_description,omitempty"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
}

// PostStats denormalized counters, incremented atomically store-side.
type PostStats struct {
	Views    int64 `bson:"views" json:"views"`
	Likes    int64 `bson:"likes" json:"likes"`
	Shares   int64 `bson:"shares" json:"shares"`
	Comments int64 `bson:"comments" json:"comments"`
}

// EstimateReadingTime derived minutes for wordCount words.
func EstimateReadingTime(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}

	return (wordCount + wordsPerMinute - 1) / wordsPerMinute
}

// MarkPublished applies the publish transition. PublishedAt is written
// only the first time; republishing an archived post keeps the original
// timestamp.
func (p *Post) MarkPublished() {
	p.Status = PostStatusPublished
	p.IsPublished = true
	if p.PublishedAt == nil {
		now := gutils.Clock.GetUTCNow()
		p.PublishedAt = &now
	}
}

// ValidCategory reports whether category is in the fixed enum.
func ValidCategory(category string) bool {
	for _, c := range PostCategories {
		if c == category {
			return true
		}
	}

	return false
}

// NewPost create a new draft post with defaults applied.
func NewPost() *Post {
	now := gutils.Clock.GetUTCNow()
	return &Post{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Category:  "uncategorized",
		Status:    PostStatusDraft,
	}
}
