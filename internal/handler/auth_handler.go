package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clickdeck/internal/service/auth"
	"clickdeck/pkg/logger"
	"clickdeck/pkg/metrics"
)

type AuthHandler struct {
	authService *auth.Service
	logger      *zap.Logger
}

func NewAuthHandler(authService *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		metrics.IncrementLoginAttempts("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.IncrementLoginAttempts("invalid")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		metrics.IncrementLoginAttempts("error")
		logger.WithTrace(c.Request.Context(), h.logger).Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	metrics.IncrementLoginAttempts("success")
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
