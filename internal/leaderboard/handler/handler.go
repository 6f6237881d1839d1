// Package handler provides HTTP handlers for leaderboard endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	"github.com/festy23/futamigo/internal/leaderboard/service"
)

// Handler handles HTTP requests for leaderboard endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new leaderboard handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetLeaderboard handles GET /leaderboard.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	resp, err := h.service.GetLeaderboard(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting leaderboard", "error", err)
		httpapi.Internal(c)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recompute handles POST /leaderboard/recompute.
func (h *Handler) Recompute(c *gin.Context) {
	resp, err := h.service.Recompute(c.Request.Context())
	if err != nil {
		httpapi.Error(c, http.StatusInternalServerError, "RECOMPUTE_FAILED", "leaderboard recompute failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}
