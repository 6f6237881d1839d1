// Package router provides match module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/match/handler"
	"github.com/festy23/futamigo/internal/match/repository"
	"github.com/festy23/futamigo/internal/match/service"
	"github.com/festy23/futamigo/internal/middleware"
)

// RegisterRoutes registers match module routes.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	guard *middleware.Authenticator,
	recomputer service.Recomputer,
) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, recomputer, logger)
	h := handler.New(svc, logger)

	r.GET("/rounds/:id/matches", h.ListRoundMatches)

	matches := r.Group("/matches")
	matches.GET("/:id", h.GetMatch)
	matches.POST("", guard.RequireAdmin(), h.CreateMatch)
	matches.PUT("/:id/result", guard.RequireAdmin(), h.SetResult)
}
