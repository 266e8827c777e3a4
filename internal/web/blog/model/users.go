// Package model contains the persisted documents of the blog module.
package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User blog user account
type User struct {
	// ID unique identifier for the user
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt time when the account was created
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	// UpdatedAt time when the account was last modified
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
	// Username unique display handle
	Username string `bson:"username" json:"username"`
	// Email unique login email, lower-cased
	Email string `bson:"email" json:"email"`
	// Password hashed password, never serialized
	Password string `bson:"password" json:"-"`
	// ProfilePicture avatar URL
	ProfilePicture string `bson:"profilePicture" json:"profile_picture"`
	// Bio short self description
	Bio string `bson:"bio" json:"bio"`
	// FirstName optional given name
	FirstName string `bson:"firstName,omitempty" json:"first_name,omitempty"`
	// LastName optional family name
	LastName string `bson:"lastName,omitempty" json:"last_name,omitempty"`
	// IsAdmin grants access to admin-only views
	IsAdmin bool `bson:"isAdmin" json:"is_admin"`
	// IsVerified whether the email was confirmed
	IsVerified bool `bson:"isVerified" json:"is_verified"`
	// VerificationToken opaque token mailed out to confirm the email
	VerificationToken string `bson:"verificationToken,omitempty" json:"-"`
	// IsActive false for soft-deleted accounts
	IsActive bool `bson:"isActive" json:"is_active"`
	// LastLogin time of the latest successful login
	LastLogin *time.Time `bson:"lastLogin,omitempty" json:"last_login,omitempty"`
	// Stats denormalized aggregate counters
	Stats UserStats `bson:"stats" json:"stats"`
}

// UserStats denormalized counters kept by incremental updates.
type UserStats struct {
	PostsCount     int64 `bson:"postsCount" json:"posts_count"`
	CommentsCount  int64 `bson:"commentsCount" json:"comments_count"`
	FollowersCount int64 `bson:"followersCount" json:"followers_count"`
	FollowingCount int64 `bson:"followingCount" json:"following_count"`
}

// FullName display name, falling back to the username.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}

	return u.Username
}

// NewUser create a new user with defaults applied.
func NewUser() *User {
	now := gutils.Clock.GetUTCNow()
	return &User{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
}
