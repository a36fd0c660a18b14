package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
	"clickdeck/pkg/logger"
)

type FolderHandler struct {
	clickup *clickup.Client
	logger  *zap.Logger
}

func NewFolderHandler(client *clickup.Client, logger *zap.Logger) *FolderHandler {
	return &FolderHandler{
		clickup: client,
		logger:  logger,
	}
}

// GetFolders handles GET /folders/:id, where id is the space id.
func (h *FolderHandler) GetFolders(c *gin.Context) {
	data, err := h.clickup.GetFolders(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch folders failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// CreateFolder handles POST /create-folder.
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		SpaceID string `json:"spaceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.SpaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name and spaceId are required."})
		return
	}

	data, err := h.clickup.CreateFolder(c.Request.Context(), req.SpaceID, req.Name)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("create folder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create folder."})
		return
	}
	c.Data(http.StatusCreated, "application/json", data)
}

// UpdateFolder handles PUT /folders/:id.
func (h *FolderHandler) UpdateFolder(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name is required."})
		return
	}

	data, err := h.clickup.UpdateFolder(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("update folder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update folder."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// DeleteFolder handles DELETE /folders/:id.
func (h *FolderHandler) DeleteFolder(c *gin.Context) {
	if err := h.clickup.DeleteFolder(c.Request.Context(), c.Param("id")); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("delete folder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Folder deleted successfully."})
}
