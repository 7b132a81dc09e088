package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vartaverse/varta/backend/internal/middleware"
	"github.com/vartaverse/varta/backend/internal/telemetry"
)

// NewRouter builds the engine with the middleware stack and every route
func (h *Handlers) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if h.cfg.Telemetry.Enabled {
		r.Use(middleware.TracingMiddleware(telemetry.ServiceName))
	}
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = h.cfg.Origins()
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.OptionalAuth(h.auth))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   telemetry.ServiceName,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/ping", h.Ping)

	users := r.Group("/users")
	{
		users.POST("/login", h.Login)
		users.POST("/register", h.Register)
		users.GET("/me", h.Me)
		users.POST("/follow/:id", h.FollowUser)
		users.POST("/unfollow/:id", h.UnfollowUser)
		users.GET("/following/:id", h.GetFollowing)
		users.GET("/followers/:id", h.GetFollowers)
		users.GET("/:id", h.GetUser)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.POST("", h.CreatePost)
		posts.GET("/trending", h.TrendingPosts)
		posts.GET("/top-rated", h.TopRatedPosts)
		posts.GET("/search", h.SearchPosts)

		posts.GET("/:id", h.GetPost)
		posts.PUT("/:id", middleware.RequireAuth(), h.UpdatePost)
		posts.DELETE("/:id", middleware.RequireAuth(), h.DeletePost)

		posts.POST("/:id/like", h.ToggleLike)
		posts.GET("/:id/likes", h.GetLikesCount)
		posts.GET("/:id/liked", h.GetLikeStatus)

		posts.POST("/:id/comment", h.AddComment)
		posts.GET("/:id/comments", h.GetComments)
		posts.GET("/:id/comments/count", h.GetCommentCount)

		posts.POST("/:id/rate", h.RatePost)
		posts.GET("/:id/rating", h.GetAverageRating)
		posts.GET("/:id/rating/user", h.GetUserRating)
	}

	return r
}
