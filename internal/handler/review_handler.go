package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/middleware"
	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// ReviewHandler handles customer review endpoints.
type ReviewHandler struct {
	reviews  *service.ReviewService
	uploads  *service.UploadService
	failOpen bool
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService, uploads *service.UploadService, failOpen bool) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, uploads: uploads, failOpen: failOpen}
}

// ListReviews handles GET /api/reviews
// Anonymous callers only receive approved reviews.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context(), c.Query("status"), middleware.IsAdmin(c))
	respondList(c, h.failOpen, "reviews", reviews, err)
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to submit review")
		return
	}
	utils.Success(c, 201, "Review submitted successfully", gin.H{"id": review.ID})
}

// UploadReviewImage handles POST /api/reviews/images
func (h *ReviewHandler) UploadReviewImage(c *gin.Context) {
	storeUpload(c, h.uploads, service.FolderReviews)
}

// UpdateReview handles PUT /api/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req service.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update review")
		return
	}
	utils.Success(c, 200, "Review updated successfully", review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete review")
		return
	}
	utils.Success(c, 200, "Review deleted successfully", nil)
}
