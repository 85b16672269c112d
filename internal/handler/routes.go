package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/config"
	"github.com/affordablebilliards/billiards_api/internal/middleware"
)

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Table     *TableHandler
	Review    *ReviewHandler
	RFQ       *RFQHandler
	Blog      *BlogHandler
	Upload    *UploadHandler
	Dashboard *DashboardHandler
	SSE       *SSEHandler
	Site      *SiteHandler
}

// NewEngine builds the gin engine with the global middleware. Only the
// configured proxies may set the client IP through X-Forwarded-For, since the
// login lockout is keyed by it.
func NewEngine(api config.APIConfig) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(api.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(api.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	return router, nil
}

// RegisterRoutes registers the JSON API and the public pages.
func RegisterRoutes(router *gin.Engine, h *Handlers, jwt *middleware.JWTMiddleware) {
	admin := jwt.Required()

	api := router.Group("/api")
	api.Use(jwt.Optional())
	{
		api.GET("/health", h.Health.GetHealth)

		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/session", h.Auth.Session)

		api.GET("/tables", h.Table.ListTables)
		api.GET("/tables/:id", h.Table.GetTable)
		api.POST("/tables", admin, h.Table.CreateTable)
		api.POST("/tables/reorder", admin, h.Table.ReorderTables)
		api.PUT("/tables/:id", admin, h.Table.UpdateTable)
		api.DELETE("/tables/:id", admin, h.Table.DeleteTable)

		api.GET("/reviews", h.Review.ListReviews)
		api.POST("/reviews", h.Review.CreateReview)
		api.POST("/reviews/images", h.Review.UploadReviewImage)
		api.PUT("/reviews/:id", admin, h.Review.UpdateReview)
		api.DELETE("/reviews/:id", admin, h.Review.DeleteReview)

		api.POST("/rfqs", h.RFQ.CreateRFQ)
		api.GET("/rfqs", admin, h.RFQ.ListRFQs)
		api.GET("/rfqs/:id", admin, h.RFQ.GetRFQ)
		api.PUT("/rfqs/:id", admin, h.RFQ.UpdateRFQ)
		api.DELETE("/rfqs/:id", admin, h.RFQ.DeleteRFQ)

		api.GET("/blogs", h.Blog.ListBlogs)
		api.GET("/blogs/:id", h.Blog.GetBlog)
		api.POST("/blogs", admin, h.Blog.CreateBlog)
		api.POST("/blogs/seed", admin, h.Blog.SeedBlogs)
		api.PUT("/blogs/:id", admin, h.Blog.UpdateBlog)
		api.DELETE("/blogs/:id", admin, h.Blog.DeleteBlog)

		api.POST("/upload", admin, h.Upload.Upload)
		api.DELETE("/upload", admin, h.Upload.Delete)

		api.GET("/admin/dashboard", admin, h.Dashboard.GetStats)
	}
	// EventSource cannot send headers, so the stream authenticates from ?token=.
	router.GET("/api/admin/events", h.SSE.Stream)

	router.GET("/", h.Site.Home)
	router.GET("/inventory", h.Site.Inventory)
	router.GET("/inventory/:id", h.Site.Table)
	router.GET("/sold", h.Site.Sold)
	router.GET("/services", h.Site.Services)
	router.GET("/about", h.Site.About)
	router.GET("/blog", h.Site.Blog)
	router.GET("/blog/:slug", h.Site.Post)
	router.GET("/rfq", h.Site.RFQForm)
	router.POST("/rfq", h.Site.SubmitRFQ)
	router.GET("/reviews", h.Site.Reviews)
	router.POST("/reviews", h.Site.SubmitReview)
	router.NoRoute(h.Site.NotFound)
}
