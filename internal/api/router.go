package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/blogworks/blog-api/docs"
	"github.com/blogworks/blog-api/internal/api/handler"
	"github.com/blogworks/blog-api/internal/api/middleware"
	"github.com/blogworks/blog-api/internal/core/service"
	"github.com/blogworks/blog-api/internal/infrastructure/config"
	mongodb "github.com/blogworks/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/blogworks/blog-api/internal/infrastructure/db/redis"
	"github.com/blogworks/blog-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, tokens, throttle, log)
	postService := service.NewPostService(postRepo, commentRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(postService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	requireAuth := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Post routes ---
	e.GET("/posts", postHandler.List)
	e.GET("/publishedPosts", postHandler.ListPublished)
	e.GET("/unpublishedPosts", postHandler.ListUnpublished)
	e.GET("/post/:id", postHandler.Get)
	e.POST("/post", postHandler.Create, requireAuth)
	e.DELETE("/post/:id/delete", postHandler.Delete, requireAuth)
	e.PUT("/post/:id/edit", postHandler.Edit, requireAuth)

	// --- Comment routes (open to visitors) ---
	e.POST("/post/:id/addcomment", commentHandler.Add)

	// --- Operational routes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
