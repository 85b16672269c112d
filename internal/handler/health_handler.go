package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	store   store.Store
	uploads *service.UploadService
	auth    *service.AuthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(st store.Store, uploads *service.UploadService, auth *service.AuthService) *HealthHandler {
	return &HealthHandler{store: st, uploads: uploads, auth: auth}
}

// GetHealth handles GET /api/health
// It reports the document store, object storage and lockout backends.
// A failing store degrades the status but never fails the check.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := "healthy"
	storeStatus := "connected"
	storeInfo := gin.H{"driver": h.store.Name()}
	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
		storeStatus = "unavailable"
		storeInfo["error"] = err.Error()
	}
	storeInfo["status"] = storeStatus

	utils.Success(c, 200, "Service is "+status, gin.H{
		"status":  status,
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"store":   storeInfo,
		"storage": gin.H{"driver": h.uploads.StorageName()},
		"lockout": gin.H{"driver": h.auth.GuardName()},
	})
}
