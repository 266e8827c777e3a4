// Package controller exposes the blog module over REST.
package controller

import (
	"strconv"

	"github.com/Laisky/errors/v2"
	ginMw "github.com/Laisky/gin-middlewares/v7"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-blog-pro/blog-api/internal/web"
	"github.com/tech-blog-pro/blog-api/internal/web/blog/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/blog/model"
	"github.com/tech-blog-pro/blog-api/internal/web/blog/service"
	"github.com/tech-blog-pro/blog-api/library/auth"
	"github.com/tech-blog-pro/blog-api/library/jwt"
)

// setLoginToken is an override point for tests.
var setLoginToken = func(ctx *gin.Context, uc *jwt.UserClaims) (string, error) {
	return auth.Instance.SetLoginCookiev2(ctx, ginMw.WithAuthClaims(uc))
}

// Type blog REST controller
type Type struct {
	svc *service.Blog

	// override points for tests
	currentUser func(ctx *gin.Context) (*model.User, error)
}

// New create new blog controller
func New(svc *service.Blog) *Type {
	t := &Type{svc: svc}
	t.currentUser = func(ctx *gin.Context) (*model.User, error) {
		user, err := t.svc.CurrentUser(ctx)
		if err != nil {
			return nil, web.Unauthorized("login required")
		}

		return user, nil
	}

	return t
}

// RegisterRoutes mounts the blog endpoints on server.
func (t *Type) RegisterRoutes(server *gin.Engine) {
	server.GET("/posts", t.listPosts)
	server.GET("/posts/:slug", t.getPost)
	server.POST("/posts", t.createPost)
	server.PUT("/posts/:id", t.updatePost)
	server.DELETE("/posts/:id", t.deletePost)

	server.GET("/posts/:slug/comments", t.listComments)
	server.POST("/posts/:slug/comments", t.createComment)
	server.PUT("/comments/:id/like", t.likeComment)
	server.DELETE("/comments/:id", t.deleteComment)

	server.POST("/auth/signup", t.signup)
	server.POST("/auth/login", t.login)
	server.GET("/auth/verify/:token", t.verifyEmail)
	server.GET("/users/me", t.getProfile)
	server.PUT("/users/me", t.updateProfile)
	server.DELETE("/users/:id", t.deactivateUser)
}

// mapServiceErr translates sentinel service errors to status-tagged
// ones. Anything untagged stays as-is so the central responder answers
// 500 without leaking details.
func mapServiceErr(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return web.NotFound(err.Error())
	case errors.Is(err, model.ErrDuplicate),
		errors.Is(err, model.ErrInvalid):
		return web.BadRequest(err.Error())
	case errors.Is(err, model.ErrForbidden):
		return web.Forbidden(err.Error())
	}

	return err
}

func (t *Type) listPosts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))

	posts, err := t.svc.LoadPosts(ctx, &dto.PostCfg{
		Page:     page,
		Size:     size,
		Category: ctx.Query("category"),
		Tag:      ctx.Query("tag"),
	})
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OK(ctx, posts)
}

func (t *Type) getPost(ctx *gin.Context) {
	var viewer *model.User
	if user, err := t.currentUser(ctx); err == nil {
		viewer = user
	}

	post, err := t.svc.LoadPostBySlug(ctx, ctx.Param("slug"), viewer)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OK(ctx, post)
}

func (t *Type) createPost(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	req := new(dto.NewPostRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	post, err := t.svc.CreatePost(ctx, user, req)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.Created(ctx, "post created successfully", post)
}

func (t *Type) updatePost(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid post id"))
		return
	}

	req := new(dto.UpdatePostRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	post, err := t.svc.UpdatePost(ctx, user, id, req)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "post updated successfully", post)
}

func (t *Type) deletePost(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid post id"))
		return
	}

	if err = t.svc.DeletePost(ctx, user, id); err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "post deleted successfully", nil)
}

func (t *Type) listComments(ctx *gin.Context) {
	comments, err := t.svc.LoadComments(ctx, ctx.Param("slug"))
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OK(ctx, comments)
}

func (t *Type) createComment(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	req := new(dto.NewCommentRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	comment, err := t.svc.CreateComment(ctx, user, ctx.Param("slug"), req)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.Created(ctx, "comment created successfully", comment)
}

func (t *Type) likeComment(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid comment id"))
		return
	}

	comment, err := t.svc.ToggleCommentLike(ctx, user, id)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OK(ctx, comment)
}

func (t *Type) deleteComment(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid comment id"))
		return
	}

	if err = t.svc.DeleteComment(ctx, user, id); err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "comment deleted successfully", nil)
}

func (t *Type) signup(ctx *gin.Context) {
	req := new(dto.SignupRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	user, err := t.svc.UserRegister(ctx, req)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.Created(ctx, "user created successfully", user)
}

func (t *Type) login(ctx *gin.Context) {
	req := new(dto.LoginRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	user, err := t.svc.ValidateLogin(ctx, req.Account, req.Password)
	if err != nil {
		web.AbortErr(ctx, web.Unauthorized("invalid account or password"))
		return
	}

	uc := jwt.NewUserClaims(user.ID.Hex(), user.Username, user.IsAdmin)
	token, err := setLoginToken(ctx, uc)
	if err != nil {
		web.AbortErr(ctx, errors.Wrap(err, "set login cookie"))
		return
	}

	web.OK(ctx, gin.H{
		"user":  user,
		"token": token,
	})
}

func (t *Type) verifyEmail(ctx *gin.Context) {
	user, err := t.svc.VerifyEmail(ctx, ctx.Param("token"))
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "email verified successfully", user)
}

func (t *Type) getProfile(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	web.OK(ctx, user)
}

func (t *Type) updateProfile(ctx *gin.Context) {
	user, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	req := new(dto.UpdateProfileRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	updated, err := t.svc.UpdateProfile(ctx, user, req)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "profile updated successfully", updated)
}

func (t *Type) deactivateUser(ctx *gin.Context) {
	actor, err := t.currentUser(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid user id"))
		return
	}

	target, err := t.svc.LoadUserByID(ctx, id)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	if err = t.svc.DeactivateUser(ctx, actor, target); err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "user deactivated successfully", nil)
}
