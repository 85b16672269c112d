package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/middleware"
	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// BlogHandler handles blog post endpoints.
type BlogHandler struct {
	blogs    *service.BlogService
	failOpen bool
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(blogs *service.BlogService, failOpen bool) *BlogHandler {
	return &BlogHandler{blogs: blogs, failOpen: failOpen}
}

// ListBlogs handles GET /api/blogs
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	posts, err := h.blogs.List(c.Request.Context(), c.Query("status"), c.Query("slug"), middleware.IsAdmin(c))
	respondList(c, h.failOpen, "blog posts", posts, err)
}

// GetBlog handles GET /api/blogs/:id
func (h *BlogHandler) GetBlog(c *gin.Context) {
	post, err := h.blogs.Get(c.Request.Context(), c.Param("id"), middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve blog post")
		return
	}
	utils.Success(c, 200, "Blog post retrieved", post)
}

// CreateBlog handles POST /api/blogs
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req service.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	var author string
	if s := middleware.GetSession(c); s != nil {
		author = s.Name
	}
	post, err := h.blogs.Create(c.Request.Context(), &req, author)
	if err != nil {
		respondError(c, err, "Failed to create blog post")
		return
	}
	utils.Success(c, 201, "Blog post created successfully", post)
}

// UpdateBlog handles PUT /api/blogs/:id
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	var req service.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	post, err := h.blogs.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update blog post")
		return
	}
	utils.Success(c, 200, "Blog post updated successfully", post)
}

// DeleteBlog handles DELETE /api/blogs/:id
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	if err := h.blogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete blog post")
		return
	}
	utils.Success(c, 200, "Blog post deleted successfully", nil)
}

// SeedBlogs handles POST /api/blogs/seed
func (h *BlogHandler) SeedBlogs(c *gin.Context) {
	res, err := h.blogs.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to seed blog posts")
		return
	}
	utils.Success(c, 201, "Blog seeding completed", res)
}
