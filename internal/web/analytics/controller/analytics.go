// Package controller exposes analytics over REST.
package controller

import (
	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/tech-blog-pro/blog-api/internal/web"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/model"
	"github.com/tech-blog-pro/blog-api/internal/web/analytics/service"
	"github.com/tech-blog-pro/blog-api/library/jwt"
)

// Type analytics REST controller
type Type struct {
	svc *service.Analytics

	// override point for tests
	requireAdmin func(ctx *gin.Context) (*jwt.UserClaims, error)
}

// New create new analytics controller
func New(svc *service.Analytics) *Type {
	return &Type{
		svc:          svc,
		requireAdmin: web.RequireAdmin,
	}
}

// RegisterRoutes mounts the analytics endpoints on server. trackMws run
// on the public track endpoint only, the admin views stay unthrottled.
func (t *Type) RegisterRoutes(server *gin.Engine, trackMws ...gin.HandlerFunc) {
	server.POST("/analytics/track",
		append(trackMws, gin.HandlerFunc(t.track))...)
	server.GET("/analytics/dashboard", t.dashboard)
	server.GET("/analytics/post/:postId", t.postAnalytics)
}

func (t *Type) track(ctx *gin.Context) {
	req := new(dto.TrackRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		web.AbortErr(ctx, web.BadRequest("invalid request body"))
		return
	}

	env := &service.Envelope{
		SessionID: ctx.GetHeader("X-Session-Id"),
		UserAgent: ctx.GetHeader("User-Agent"),
		IPAddress: ctx.ClientIP(),
		Referrer:  ctx.GetHeader("Referer"),
	}
	if uc := web.OptionalClaims(ctx); uc != nil {
		env.UserID = uc.Subject
	}

	ev, err := t.svc.Track(ctx, env, req)
	if err != nil {
		// bad payloads answer 400, store failures stay with the
		// central responder
		if errors.Is(err, model.ErrInvalid) {
			err = web.BadRequest(err.Error())
		}
		web.AbortErr(ctx, err)
		return
	}

	web.OKMsg(ctx, "event tracked successfully", ev)
}

func (t *Type) dashboard(ctx *gin.Context) {
	if _, err := t.requireAdmin(ctx); err != nil {
		web.AbortErr(ctx, err)
		return
	}

	dashboard, err := t.svc.Dashboard(ctx)
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	web.OK(ctx, dashboard)
}

func (t *Type) postAnalytics(ctx *gin.Context) {
	if _, err := t.requireAdmin(ctx); err != nil {
		web.AbortErr(ctx, err)
		return
	}

	result, err := t.svc.PostAnalytics(ctx, ctx.Param("postId"))
	if err != nil {
		web.AbortErr(ctx, err)
		return
	}

	web.OK(ctx, result)
}
