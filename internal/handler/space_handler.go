package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
	"clickdeck/pkg/logger"
)

type SpaceHandler struct {
	clickup *clickup.Client
	logger  *zap.Logger
}

func NewSpaceHandler(client *clickup.Client, logger *zap.Logger) *SpaceHandler {
	return &SpaceHandler{
		clickup: client,
		logger:  logger,
	}
}

// GetSpaces handles GET /spaces/:id, where id is the team id.
func (h *SpaceHandler) GetSpaces(c *gin.Context) {
	data, err := h.clickup.GetSpaces(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch spaces failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch spaces."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// CreateSpace handles POST /create-space.
func (h *SpaceHandler) CreateSpace(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		TeamID string `json:"teamId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.TeamID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Space name and teamId are required."})
		return
	}

	data, err := h.clickup.CreateSpace(c.Request.Context(), req.TeamID, req.Name)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("create space failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create space."})
		return
	}
	c.Data(http.StatusCreated, "application/json", data)
}

// UpdateSpace handles PUT /spaces/:id.
func (h *SpaceHandler) UpdateSpace(c *gin.Context) {
	spaceID := c.Param("id")

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || spaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Space name and ID are required."})
		return
	}

	data, err := h.clickup.UpdateSpace(c.Request.Context(), spaceID, req.Name)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("update space failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update space."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// DeleteSpace handles DELETE /spaces/:id.
func (h *SpaceHandler) DeleteSpace(c *gin.Context) {
	if err := h.clickup.DeleteSpace(c.Request.Context(), c.Param("id")); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("delete space failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete space."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Space deleted successfully."})
}
