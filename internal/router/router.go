// Package router assembles the gin engine serving the public API.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/api/swagger"
	"github.com/himarpl/himarpl-api/internal/auth"
	"github.com/himarpl/himarpl-api/internal/handler"
	"github.com/himarpl/himarpl-api/internal/middleware"
	"github.com/himarpl/himarpl-api/internal/ratelimit"
	"github.com/himarpl/himarpl-api/internal/service"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
	"github.com/himarpl/himarpl-api/pkg/logger"
	corsmiddleware "github.com/himarpl/himarpl-api/pkg/middleware/cors"
	reqidmiddleware "github.com/himarpl/himarpl-api/pkg/middleware/requestid"
	"github.com/himarpl/himarpl-api/pkg/response"
)

// corsScope limits CORS headers to the API routes.
const corsScope = "/api/"

// Options carries the cross-cutting collaborators of the engine.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	TrustedProxies []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Limiter        ratelimit.Limiter
	Authenticator  auth.Authenticator
}

// Handlers groups the route handlers.
type Handlers struct {
	Departments *handler.DepartmentHandler
	Users       *handler.UserHandler
	News        *handler.NewsHandler
	Greetings   *handler.GreetingHandler
	Metrics     *handler.MetricsHandler
}

// New builds the engine. Departments, users and news sit behind the rate gate; greetings
// require an API key.
func New(opts Options, h Handlers) (*gin.Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Limiter == nil {
		opts.Limiter = ratelimit.Noop{}
	}
	if opts.Authenticator == nil {
		opts.Authenticator = auth.Permissive{}
	}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}

	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(corsmiddleware.New(corsScope, opts.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "Route not found"))
	})

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		swagger.SwaggerInfo.BasePath = opts.APIPrefix
		r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)

	gated := api.Group("")
	gated.Use(middleware.RateLimit(opts.Limiter, opts.Metrics))
	gated.GET("/departments", h.Departments.List)
	gated.GET("/users", h.Users.List)
	gated.GET("/news", h.News.List)

	greetings := api.Group("/greetings")
	greetings.Use(middleware.APIKey(opts.Authenticator))
	greetings.GET("", h.Greetings.Get)
	greetings.POST("", h.Greetings.Create)
	greetings.PUT("", h.Greetings.Update)
	greetings.DELETE("", h.Greetings.Delete)

	return r, nil
}
