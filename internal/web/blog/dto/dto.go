// Package dto request/response shapes of the blog module.
package dto

// PostCfg filters for listing posts.
type PostCfg struct {
	Page     int
	Size     int
	Category string
	Tag      string
	Slug     string
}

// NewPostRequest payload for creating a post.
type NewPostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Markdown string   `json:"markdown" binding:"required"`
	Excerpt  string   `json:"excerpt"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// UpdatePostRequest payload for updating a post; nil fields stay unchanged.
type UpdatePostRequest struct {
	Title    *string  `json:"title"`
	Markdown *string  `json:"markdown"`
	Excerpt  *string  `json:"excerpt"`
	Image    *string  `json:"image"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
	Status   *string  `json:"status"`
}

// NewCommentRequest payload for creating a comment.
type NewCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parent_id"`
}

// LoginRequest payload for logging in; account is username or email.
type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest payload for registering a user.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest payload for profile updates; nil fields stay unchanged.
type UpdateProfileRequest struct {
	Bio            *string `json:"bio"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	ProfilePicture *string `json:"profile_picture"`
}
