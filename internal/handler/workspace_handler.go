package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/clickup"
	"clickdeck/pkg/logger"
)

type WorkspaceHandler struct {
	clickup *clickup.Client
	logger  *zap.Logger
}

func NewWorkspaceHandler(client *clickup.Client, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		clickup: client,
		logger:  logger,
	}
}

// TeamInfo handles GET /team-info.
func (h *WorkspaceHandler) TeamInfo(c *gin.Context) {
	data, err := h.clickup.GetTeams(c.Request.Context())
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch team info failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team info."})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// Members handles GET /workspace-members/:teamId, reducing the upstream
// team payload to {id, name} member pairs.
func (h *WorkspaceHandler) Members(c *gin.Context) {
	data, err := h.clickup.GetTeam(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("fetch workspace members failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workspace members."})
		return
	}

	var payload struct {
		Team struct {
			Members []struct {
				User map[string]any `json:"user"`
			} `json:"members"`
		} `json:"team"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("decode workspace members failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workspace members."})
		return
	}

	users := make([]any, 0, len(payload.Team.Members))
	for _, m := range payload.Team.Members {
		users = append(users, m.User)
	}

	c.JSON(http.StatusOK, gin.H{"members": clickup.ResolveAssignees(users)})
}
