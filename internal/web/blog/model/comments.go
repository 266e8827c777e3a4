package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentStatus moderation state of a comment
type CommentStatus string

const (
	// CommentStatusPending awaiting moderation
	CommentStatusPending CommentStatus = "pending"
	// CommentStatusApproved visible to readers
	CommentStatusApproved CommentStatus = "approved"
	// CommentStatusSpam hidden as spam
	CommentStatusSpam CommentStatus = "spam"
	// CommentStatusDeleted removed by the author or an admin
	CommentStatusDeleted CommentStatus = "deleted"
)

// Comment reader reaction attached to a post, optionally threaded.
type Comment struct {
	// ID unique identifier for the comment
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt time when the comment was submitted
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	// UpdatedAt time when the comment was last modified
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
	// Content text body, 1..1000 chars
	Content string `bson:"content" json:"content"`
	// PostID the post this comment belongs to
	PostID primitive.ObjectID `bson:"postId" json:"post_id"`
	// UserID the commenting user
	UserID primitive.ObjectID `bson:"userId" json:"user_id"`
	// ParentID parent comment for threaded replies, null for roots
	ParentID *primitive.ObjectID `bson:"parentId,omitempty" json:"parent_id,omitempty"`
	// Status moderation state {pending, approved, spam, deleted}
	Status CommentStatus `bson:"status" json:"status"`
	// IsEdited whether the content was changed after creation
	IsEdited bool `bson:"isEdited" json:"is_edited"`
	// EditedAt time of the latest edit
	EditedAt *time.Time `bson:"editedAt,omitempty" json:"edited_at,omitempty"`
	// Likes ids of users who liked the comment
	Likes []string `bson:"likes" json:"likes"`
	// Dislikes ids of users who disliked the comment
	Dislikes []string `bson:"dislikes" json:"dislikes"`
	// NumberOfLikes kept equal to len(Likes) by RecountReactions
	NumberOfLikes int `bson:"numberOfLikes" json:"number_of_likes"`
	// NumberOfDislikes kept equal to len(Dislikes) by RecountReactions
	NumberOfDislikes int `bson:"numberOfDislikes" json:"number_of_dislikes"`
	// Replies populated at read time only, never stored
	Replies []*Comment `bson:"-" json:"replies,omitempty"`
}

// RecountReactions syncs the denormalized counters with the reaction
// arrays. Must run before every save that may have touched them.
func (c *Comment) RecountReactions() {
	c.NumberOfLikes = len(c.Likes)
	c.NumberOfDislikes = len(c.Dislikes)
}

// NewComment create a new comment with defaults applied.
func NewComment() *Comment {
	now := gutils.Clock.GetUTCNow()
	return &Comment{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Status:    CommentStatusApproved,
		Likes:     []string{},
		Dislikes:  []string{},
	}
}
