package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
	"clickdeck/pkg/logger"
)

type ListHandler struct {
	clickup *clickup.Client
	logger  *zap.Logger
}

func NewListHandler(client *clickup.Client, logger *zap.Logger) *ListHandler {
	return &ListHandler{
		clickup: client,
		logger:  logger,
	}
}

// GetLists handles GET /lists/:id, where id is the folder id.
func (h *ListHandler) GetLists(c *gin.Context) {
	data, err := h.clickup.GetLists(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch lists failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lists."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// CreateList handles POST /create-list.
func (h *ListHandler) CreateList(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		FolderID string `json:"folderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.FolderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List name and folderId are required."})
		return
	}

	data, err := h.clickup.CreateList(c.Request.Context(), req.FolderID, req.Name)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("create list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list."})
		return
	}
	c.Data(http.StatusCreated, "application/json", data)
}

// UpdateList handles PUT /lists/:id.
func (h *ListHandler) UpdateList(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List name is required."})
		return
	}

	data, err := h.clickup.UpdateList(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("update list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update list."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// DeleteList handles DELETE /lists/:id.
func (h *ListHandler) DeleteList(c *gin.Context) {
	if err := h.clickup.DeleteList(c.Request.Context(), c.Param("id")); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("delete list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete list."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "List deleted successfully."})
}
