package routes

import (
	"net/http"
	"time"

	"github.com/KuzenkovAG/yatube-final/cache"
	"github.com/KuzenkovAG/yatube-final/config"
	"github.com/KuzenkovAG/yatube-final/handlers"
	"github.com/KuzenkovAG/yatube-final/middleware"
	"github.com/KuzenkovAG/yatube-final/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup wires the full HTTP surface. The global feed is the only
// cached route; detail pages stay uncached so new comments show up
// immediately.
func Setup(h *handlers.Handler, s store.Store, feedCache cache.Cache, cfg config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Public listings
	router.GET("/", middleware.CachePage(feedCache, cache.FeedKey, cfg.FeedCacheTTL), h.Index)
	router.GET("/group/:slug/", h.GroupPosts)
	router.GET("/profile/:username/", h.Profile)
	router.GET("/posts/:id/", h.PostDetail)

	// Accounts
	router.POST("/auth/signup/", h.Signup)
	router.GET("/auth/login/", h.LoginForm)
	router.POST("/auth/login/", h.Login)

	// Authenticated flows
	authed := router.Group("/", middleware.RequireLogin(cfg.JWTSecret))

	authed.GET("/create/", h.PostCreateForm)
	authed.POST("/create/", h.PostCreate)

	authed.POST("/posts/:id/comment/", h.AddComment)

	owner := authed.Group("/posts/:id", middleware.PostOwnerOnly(s))
	owner.GET("/edit/", h.PostEditForm)
	owner.POST("/edit/", h.PostEdit)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Page not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}
