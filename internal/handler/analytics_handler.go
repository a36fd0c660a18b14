package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
	"clickdeck/internal/service/analytics"
	"clickdeck/pkg/logger"
)

type AnalyticsHandler struct {
	clickup       *clickup.Client
	defaultTeamID string
	logger        *zap.Logger
}

func NewAnalyticsHandler(client *clickup.Client, defaultTeamID string, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		clickup:       client,
		defaultTeamID: defaultTeamID,
		logger:        logger,
	}
}

// WorkspaceAnalytics handles GET /workspace-analytics?teamId=. The
// report is derived from the team's task list on every request.
func (h *AnalyticsHandler) WorkspaceAnalytics(c *gin.Context) {
	teamID := c.Query("teamId")
	if teamID == "" {
		teamID = h.defaultTeamID
	}

	data, err := h.clickup.GetTeamTasks(c.Request.Context(), teamID)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch workspace analytics failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workspace analytics."})
		return
	}

	var page clickup.TasksPage
	if err := json.Unmarshal(data, &page); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("decode workspace tasks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workspace analytics."})
		return
	}

	c.JSON(http.StatusOK, analytics.Summarize(page.Tasks))
}
