// Package router provides leaderboard module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/leaderboard/handler"
	"github.com/festy23/futamigo/internal/leaderboard/service"
	"github.com/festy23/futamigo/internal/middleware"
)

// RegisterRoutes registers leaderboard module routes. The service is shared
// with the match module, which recomputes after every result change.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger, guard *middleware.Authenticator) {
	h := handler.New(svc, logger)

	board := r.Group("/leaderboard")
	board.GET("", h.GetLeaderboard)
	board.POST("/recompute", guard.RequireAdmin(), h.Recompute)
}
