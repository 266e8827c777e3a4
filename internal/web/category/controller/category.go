// Package controller exposes the category module over REST.
package controller

import (
	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-blog-pro/blog-api/internal/web"
	"github.com/tech-blog-pro/blog-api/internal/web/category/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/category/model"
	"github.com/tech-blog-pro/blog-api/internal/web/category/service"
	"github.com/tech-blog-pro/blog-api/library/jwt"
)

// Type category REST controller
type Type struct {
	svc *service.Category

	// override point for tests
	requireAdmin func(ctx *gin.Context) (*jwt.UserClaims, error)
}

// New create new category controller
func New(svc *service.Category) *Type {
	return &Type{
		svc:          svc,
		requireAdmin: web.RequireAdmin,
	}
}

// RegisterRoutes mounts the category endpoints on server.
func (t *Type) RegisterRoutes(server *gin.Engine) {
	server.GET("/categories", t.listCategories)
	server.GET("/categories/hierarchy", t.hierarchy)
	server.GET("/categories/stats/overview", t.statsOverview)
	server.POST("/categories/stats/recount", t.recountStats)
	server.GET("/categories/:slug", t.getCategory)
	server.POST("/categories", t.createCategory)
	server.PUT("/categories/:id", t.updateCategory)
	server.DELETE("/categories/:id", t.deleteCategory)
}

// mapServiceErr translates sentinel service errors to status-tagged
// ones. Anything untagged stays as-is so the central responder answers
// 500 without leaking details.
func mapServiceErr(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return web.NotFound(err.Error())
	case errors.Is(err, model.ErrDuplicate),
		errors.Is(err, model.ErrInUse),
		errors.Is(err, model.ErrInvalid):
		return web.BadRequest(err.Error())
	}

	return err
}

func (t *Type) listCategories(ctx *gin.Context) {
	categories, err := t.svc.LoadCategories(ctx, &dto.ListCfg{
		Featured:   ctx.Query("featured") == "true",
		ActiveOnly: ctx.Query("active") == "true",
		ParentID:   ctx.Query("parentId"),
	})
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OK(ctx, categories)
}

func (t *Type) hierarchy(ctx *gin.Context) {
	tree, err := t.svc.Hierarchy(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	web.OK(ctx, tree)
}

func (t *Type) getCategory(ctx *gin.Context) {
	page, err := t.svc.LoadBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OK(ctx, page)
}

func (t *Type) createCategory(ctx *gin.Context) {
	if _, err := t.requireAdmin(ctx); err != nil {
		web.AbortErr(ctx, err)
		return
	}

	req := new(dto.NewCategoryRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	category, err := t.svc.CreateCategory(ctx, req)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.Created(ctx, "category created successfully", category)
}

func (t *Type) updateCategory(ctx *gin.Context) {
	if _, err := t.requireAdmin(ctx); err != nil {
		web.AbortErr(ctx, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid category id"))
		return
	}

	req := new(dto.UpdateCategoryRequest)
	if err = ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	category, err := t.svc.UpdateCategory(ctx, id, req)
	if err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "category updated successfully", category)
}

func (t *Type) deleteCategory(ctx *gin.Context) {
	if _, err := t.requireAdmin(ctx); err != nil {
		web.AbortErr(ctx, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid category id"))
		return
	}

	if err = t.svc.DeleteCategory(ctx, id); err != nil {
		web.AbortErr(ctx, mapServiceErr(err))
		return
	}

	web.OKMsg(ctx, "category deleted successfully", nil)
}

func (t *Type) statsOverview(ctx *gin.Context) {
	if _, err := t.requireAdmin(ctx); err != nil {
		web.AbortErr(ctx, err)
		return
	}

	rows, err := t.svc.StatsOverview(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	web.OK(ctx, rows)
}

func (t *Type) recountStats(ctx *gin.Context) {
	if _, err := t.requireAdmin(ctx); err != nil {
		web.AbortErr(ctx, err)
		return
	}

	rows, err := t.svc.RecountStats(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	web.OKMsg(ctx, "category stats recounted successfully", rows)
}
