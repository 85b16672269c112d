package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// RFQHandler handles quote request endpoints.
type RFQHandler struct {
	rfqs     *service.RFQService
	failOpen bool
}

// NewRFQHandler constructs an RFQHandler.
func NewRFQHandler(rfqs *service.RFQService, failOpen bool) *RFQHandler {
	return &RFQHandler{rfqs: rfqs, failOpen: failOpen}
}

// ListRFQs handles GET /api/rfqs
func (h *RFQHandler) ListRFQs(c *gin.Context) {
	rfqs, err := h.rfqs.List(c.Request.Context(), c.Query("status"))
	respondList(c, h.failOpen, "RFQs", rfqs, err)
}

// GetRFQ handles GET /api/rfqs/:id
func (h *RFQHandler) GetRFQ(c *gin.Context) {
	rfq, err := h.rfqs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve RFQ")
		return
	}
	utils.Success(c, 200, "RFQ retrieved", rfq)
}

// CreateRFQ handles POST /api/rfqs
func (h *RFQHandler) CreateRFQ(c *gin.Context) {
	var req service.CreateRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rfq, err := h.rfqs.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to submit quote request")
		return
	}
	utils.Success(c, 201, service.RFQSubmittedMessage, gin.H{
		"id":      rfq.ID,
		"message": service.RFQSubmittedMessage,
	})
}

// UpdateRFQ handles PUT /api/rfqs/:id
func (h *RFQHandler) UpdateRFQ(c *gin.Context) {
	var req service.UpdateRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rfq, err := h.rfqs.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update RFQ")
		return
	}
	utils.Success(c, 200, "RFQ updated successfully", rfq)
}

// DeleteRFQ handles DELETE /api/rfqs/:id
func (h *RFQHandler) DeleteRFQ(c *gin.Context) {
	if err := h.rfqs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete RFQ")
		return
	}
	utils.Success(c, 200, "RFQ deleted successfully", nil)
}
