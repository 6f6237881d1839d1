// Package router provides prediction module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/metrics"
	"github.com/festy23/futamigo/internal/middleware"
	"github.com/festy23/futamigo/internal/prediction/handler"
	"github.com/festy23/futamigo/internal/prediction/repository"
	"github.com/festy23/futamigo/internal/prediction/service"
)

// RegisterRoutes registers prediction module routes.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	m *metrics.Metrics,
	guard *middleware.Authenticator,
) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger, m)
	h := handler.New(svc, logger)

	predictions := r.Group("/rounds/:id/predictions")
	predictions.GET("", h.Sheet)
	predictions.POST("", guard.RequireUser(), h.Submit)
	predictions.GET("/me", guard.RequireUser(), h.Mine)
}
