package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// TableHandler handles pool table inventory endpoints.
type TableHandler struct {
	tables   *service.TableService
	failOpen bool
}

// NewTableHandler constructs a TableHandler.
func NewTableHandler(tables *service.TableService, failOpen bool) *TableHandler {
	return &TableHandler{tables: tables, failOpen: failOpen}
}

// ListTables handles GET /api/tables
func (h *TableHandler) ListTables(c *gin.Context) {
	tables, err := h.tables.List(c.Request.Context(), c.Query("status"))
	respondList(c, h.failOpen, "tables", tables, err)
}

// GetTable handles GET /api/tables/:id
func (h *TableHandler) GetTable(c *gin.Context) {
	table, err := h.tables.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve table")
		return
	}
	utils.Success(c, 200, "Table retrieved", table)
}

// CreateTable handles POST /api/tables
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req service.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	table, err := h.tables.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create table")
		return
	}
	utils.Success(c, 201, "Table created successfully", table)
}

// UpdateTable handles PUT /api/tables/:id
func (h *TableHandler) UpdateTable(c *gin.Context) {
	var req service.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	table, err := h.tables.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update table")
		return
	}
	utils.Success(c, 200, "Table updated successfully", table)
}

// DeleteTable handles DELETE /api/tables/:id
func (h *TableHandler) DeleteTable(c *gin.Context) {
	if err := h.tables.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete table")
		return
	}
	utils.Success(c, 200, "Table deleted successfully", nil)
}

// ReorderTables handles POST /api/tables/reorder
func (h *TableHandler) ReorderTables(c *gin.Context) {
	var req struct {
		Updates []service.ReorderItem `json:"updates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.tables.Reorder(c.Request.Context(), req.Updates); err != nil {
		respondError(c, err, "Failed to reorder tables")
		return
	}
	utils.Success(c, 200, "Tables reordered successfully", gin.H{"updated": len(req.Updates)})
}
