package handler

import (
	"log/slog"
	"net/http"
	"time"

	"blogdesk/internal/microservices/http-api/middleware"
	"blogdesk/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services bundles what the router wires into handlers.
type Services struct {
	Auth     service.AuthService
	Profiles service.ProfileService
	Blogs    service.BlogService
	Comments service.CommentService
	Admin    service.AdminService
	Category service.CategoryService
}

type RouterOptions struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// Limiter may be nil to disable throttling.
	Limiter *middleware.RateLimiter
	// Docs mounts the Swagger UI at /swagger.
	Docs bool
}

// NewRouter builds the gin engine with every route under /api.
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter))
	}
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Docs {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authMW := middleware.AuthMiddleware(svc.Auth)
	api := r.Group("/api")

	NewAuthHandler(svc.Auth).RegisterRoutes(api, authMW)
	NewCategoryHandler(svc.Category).RegisterRoutes(api, authMW)

	protected := api.Group("", authMW)
	NewProfileHandler(svc.Profiles).RegisterRoutes(protected)
	NewBlogHandler(svc.Blogs).RegisterRoutes(protected)
	NewCommentHandler(svc.Comments).RegisterRoutes(protected)
	NewAdminHandler(svc.Admin).RegisterRoutes(protected)

	return r
}
