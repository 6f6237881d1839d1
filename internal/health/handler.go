// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/database"
)

const defaultTimeout = 5 * time.Second

// Handler handles health check requests.
type Handler struct {
	db      *gorm.DB
	logger  *zap.SugaredLogger
	timeout time.Duration
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:      db,
		logger:  logger,
		timeout: defaultTimeout,
	}
}

// Response represents health check response.
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	// OpenConnections is omitted when the pool cannot be inspected.
	OpenConnections *int `json:"open_connections,omitempty"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Status:   "unhealthy",
			Database: "unreachable",
		})
		return
	}

	resp := Response{Status: "ok", Database: h.db.Dialector.Name()}
	if stats, err := database.Stats(h.db); err == nil {
		open := stats.OpenConnections
		resp.OpenConnections = &open
	}
	c.JSON(http.StatusOK, resp)
}
