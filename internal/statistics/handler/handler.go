// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	"github.com/festy23/futamigo/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetPoolStatistics handles GET /statistics request.
func (h *Handler) GetPoolStatistics(c *gin.Context) {
	resp, err := h.service.GetPoolStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting pool statistics", "error", err)
		httpapi.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRoundsStatistics handles GET /statistics/rounds request.
func (h *Handler) GetRoundsStatistics(c *gin.Context) {
	resp, err := h.service.GetRoundsStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting rounds statistics", "error", err)
		httpapi.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}
