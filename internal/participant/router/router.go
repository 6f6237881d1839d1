// Package router provides participant module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/middleware"
	"github.com/festy23/futamigo/internal/participant/handler"
	"github.com/festy23/futamigo/internal/participant/repository"
	"github.com/festy23/futamigo/internal/participant/service"
)

// RegisterRoutes registers participant and auth routes. Login is rate limited
// per client IP.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	guard *middleware.Authenticator,
	tokens service.TokenIssuer,
	recomputer service.Recomputer,
	loginLimiter *middleware.IPRateLimiter,
) {
	repo := repository.New(db, logger)
	svc := service.New(repo, tokens, recomputer, logger)
	h := handler.New(svc, logger)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", middleware.RateLimit(loginLimiter), h.Login)

	participants := r.Group("/participants")
	participants.GET("/me", guard.RequireUser(), h.Me)
	participants.PUT("/me", guard.RequireUser(), h.UpdateMe)
	participants.GET("/:id/profile", h.Profile)
	participants.POST("/:id/flags", guard.RequireAdmin(), h.SetFlags)
}
