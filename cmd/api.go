package cmd

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	redisLib "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/tech-blog-pro/blog-api/internal/web"
	analyticsCtl "github.com/tech-blog-pro/blog-api/internal/web/analytics/controller"
	analyticsDao "github.com/tech-blog-pro/blog-api/internal/web/analytics/dao"
	analyticsSvc "github.com/tech-blog-pro/blog-api/internal/web/analytics/service"
	blogCtl "github.com/tech-blog-pro/blog-api/internal/web/blog/controller"
	blogDao "github.com/tech-blog-pro/blog-api/internal/web/blog/dao"
	blogSvc "github.com/tech-blog-pro/blog-api/internal/web/blog/service"
	categoryCtl "github.com/tech-blog-pro/blog-api/internal/web/category/controller"
	categoryDao "github.com/tech-blog-pro/blog-api/internal/web/category/dao"
	categorySvc "github.com/tech-blog-pro/blog-api/internal/web/category/service"
	"github.com/tech-blog-pro/blog-api/library/db/mongo"
	"github.com/tech-blog-pro/blog-api/library/db/redis"
	"github.com/tech-blog-pro/blog-api/library/log"
	"github.com/tech-blog-pro/blog-api/library/ratelimit"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `REST API service for the blog platform`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if err := initialize(cmd.Context(), cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runAPI(cmd.Context()); err != nil {
			log.Logger.Panic("run api", zap.Error(err))
		}
	},
}

func init() {
	rootCMD.AddCommand(apiCMD)
}

func runAPI(ctx context.Context) error {
	logger := log.Logger.Named("api")

	db, err := mongo.NewDB(ctx, mongo.DialInfo{
		Addr:   gconfig.Shared.GetString("settings.db.blog.addr"),
		DBName: gconfig.Shared.GetString("settings.db.blog.db"),
		User:   gconfig.Shared.GetString("settings.db.blog.user"),
		Pwd:    gconfig.Shared.GetString("settings.db.blog.pwd"),
	})
	if err != nil {
		return errors.Wrap(err, "dial mongodb")
	}
	defer db.Close(ctx) //nolint:errcheck

	rdb := redis.NewDB(&redisLib.Options{
		Addr:     gconfig.Shared.GetString("settings.db.redis.addr"),
		DB:       gconfig.Shared.GetInt("settings.db.redis.db"),
		Password: gconfig.Shared.GetString("settings.db.redis.pwd"),
	})
	defer rdb.Close() //nolint:errcheck

	blogService, err := blogSvc.New(ctx, logger.Named("blog"),
		blogDao.New(logger.Named("blog_dao"), db))
	if err != nil {
		return errors.Wrap(err, "new blog service")
	}

	categoryService, err := categorySvc.New(ctx, logger.Named("category"),
		categoryDao.New(logger.Named("category_dao"), db))
	if err != nil {
		return errors.Wrap(err, "new category service")
	}

	analyticsService, err := analyticsSvc.New(ctx, logger.Named("analytics"),
		analyticsDao.New(logger.Named("analytics_dao"), db))
	if err != nil {
		return errors.Wrap(err, "new analytics service")
	}

	limiter, err := ratelimit.New(logger.Named("ratelimit"), rdb,
		trackRateLimit(), trackRateWindow())
	if err != nil {
		return errors.Wrap(err, "new rate limiter")
	}

	server := web.NewServer()
	blogCtl.New(blogService).RegisterRoutes(server)
	categoryCtl.New(categoryService).RegisterRoutes(server)
	analyticsCtl.New(analyticsService).RegisterRoutes(server, limiter.Middleware())

	web.RunServer(gconfig.Shared.GetString("listen"), server)
	return nil
}

func trackRateLimit() int {
	if v := gconfig.Shared.GetInt("settings.ratelimit.limit"); v > 0 {
		return v
	}

	return 100
}

func trackRateWindow() time.Duration {
	if v := gconfig.Shared.GetDuration("settings.ratelimit.window"); v > 0 {
		return v
	}

	return time.Minute
}
