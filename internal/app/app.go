// Package app assembles the feature modules into one HTTP handler and runs it.
package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/auth"
	"github.com/festy23/futamigo/internal/config"
	"github.com/festy23/futamigo/internal/health"
	leaderboardRepository "github.com/festy23/futamigo/internal/leaderboard/repository"
	leaderboardRouter "github.com/festy23/futamigo/internal/leaderboard/router"
	leaderboardService "github.com/festy23/futamigo/internal/leaderboard/service"
	matchRouter "github.com/festy23/futamigo/internal/match/router"
	"github.com/festy23/futamigo/internal/metrics"
	"github.com/festy23/futamigo/internal/middleware"
	participantRepository "github.com/festy23/futamigo/internal/participant/repository"
	participantRouter "github.com/festy23/futamigo/internal/participant/router"
	predictionRouter "github.com/festy23/futamigo/internal/prediction/router"
	roundRouter "github.com/festy23/futamigo/internal/round/router"
	statisticsRouter "github.com/festy23/futamigo/internal/statistics/router"
	teamRouter "github.com/festy23/futamigo/internal/team/router"
)

// NewLeaderboard builds the leaderboard service. Every caller that triggers a
// recompute must share one instance so recomputes stay serialized.
func NewLeaderboard(db *gorm.DB, logger *zap.SugaredLogger, m *metrics.Metrics) leaderboardService.Service {
	return leaderboardService.New(leaderboardRepository.New(db, logger), db, logger, m)
}

// NewRouter registers middleware and every module route on a new engine.
func NewRouter(cfg config.Config, db *gorm.DB, logger *zap.SugaredLogger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger, "/health", "/metrics"),
		middleware.Metrics(m),
	)

	tokens := auth.NewIssuer(cfg.Auth)
	guard := middleware.NewAuthenticator(tokens, middleware.WithAccounts(
		participantAccounts{repo: participantRepository.New(db, logger)},
	))
	loginLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst)
	board := NewLeaderboard(db, logger, m)

	r.GET("/health", health.New(db, logger).Check)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	participantRouter.RegisterRoutes(r, db, logger, guard, tokens, board, loginLimiter)
	teamRouter.RegisterRoutes(r, db, logger, guard)
	roundRouter.RegisterRoutes(r, db, logger, m, guard)
	matchRouter.RegisterRoutes(r, db, logger, guard, board)
	predictionRouter.RegisterRoutes(r, db, logger, m, guard)
	leaderboardRouter.RegisterRoutes(r, board, logger, guard)
	statisticsRouter.RegisterRoutes(r, db, logger)

	return r
}
