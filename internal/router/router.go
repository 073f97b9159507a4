package router

import (
	"github.com/blogbliss/backend/internal/handlers"
	authmw "github.com/blogbliss/backend/internal/middleware"
	"github.com/blogbliss/backend/internal/models"
	"github.com/blogbliss/backend/internal/repositories"
	"github.com/blogbliss/backend/pkg/config"
	"github.com/blogbliss/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, store storage.ObjectStorage, cfg *config.Config) {
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate models")
	}

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))

	auth := authmw.JWTAuthMiddleware(cfg.JWTSecret)
	optionalAuth := authmw.OptionalJWTAuthMiddleware(cfg.JWTSecret)
	// Brute-force protection on the credential endpoints only
	rateLimit := echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(20)))

	e.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler.RegisterAuthRoutes(e, rateLimit)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, store)
	e.POST("/posts", postHandler.CreatePost, auth)
	e.GET("/posts/:postId", postHandler.GetPost, optionalAuth)
	e.PUT("/posts/:postId", postHandler.UpdatePost, auth)
	e.DELETE("/posts/:postId", postHandler.DeletePost, auth)
	e.POST("/myposts", postHandler.MyPosts, auth)

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo)
	e.GET("/posts", feedHandler.GetPosts)

	commentHandler := handlers.NewCommentHandler(postRepo, userRepo)
	e.POST("/posts/comments/:postId", commentHandler.AddComment, auth)
	e.DELETE("/posts/comments/:commentId", commentHandler.DeleteComment, auth)

	likeHandler := handlers.NewLikeHandler(postRepo)
	e.POST("/posts/like/:postId", likeHandler.ToggleLike, auth)

	profileHandler := handlers.NewProfileHandler(userRepo, store)
	e.GET("/profile", profileHandler.GetProfile, auth)
	e.PUT("/profile", profileHandler.UpdateProfile, auth)
	e.POST("/profile", profileHandler.SetProfileImage, auth)
	e.PUT("/change-password", profileHandler.ChangePassword, auth)

	statsHandler := handlers.NewStatsHandler(postRepo)
	stats := e.Group("/api/user", auth)
	stats.GET("/posts", statsHandler.UserPosts)
	stats.GET("/comments", statsHandler.UserComments)
	stats.GET("/recent-comments", statsHandler.RecentComments)

	log.Info().Msg("All routes configured")
}
