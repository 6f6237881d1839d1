// Package router provides round module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/metrics"
	"github.com/festy23/futamigo/internal/middleware"
	"github.com/festy23/futamigo/internal/round/handler"
	"github.com/festy23/futamigo/internal/round/repository"
	"github.com/festy23/futamigo/internal/round/service"
)

// RegisterRoutes registers round module routes.
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

	rounds := r.Group("/rounds")
	rounds.GET("", h.ListRounds)
	rounds.GET("/current", h.CurrentRound)
	rounds.GET("/:id", h.GetRound)

	admin := rounds.Group("", guard.RequireAdmin())
	admin.POST("", h.CreateRound)
	admin.GET("/diagnose", h.DiagnoseRounds)
	admin.POST("/repair", h.RepairActiveRounds)
	admin.POST("/:id/activate", h.ActivateRound)
	admin.POST("/:id/deactivate", h.DeactivateRound)
}
