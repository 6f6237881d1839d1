// Package service provides business logic layer for statistics module.
package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/scoring"
	"github.com/festy23/futamigo/internal/statistics/model"
	"github.com/festy23/futamigo/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetPoolStatistics returns pool-wide totals and hit counts.
	GetPoolStatistics(ctx context.Context) (*model.PoolStatisticsResponse, error)

	// GetRoundsStatistics returns totals for every round.
	GetRoundsStatistics(ctx context.Context) (*model.RoundsStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetPoolStatistics returns pool-wide totals and hit counts. Hits are scored
// with the same rule as the leaderboard.
func (s *service) GetPoolStatistics(ctx context.Context) (*model.PoolStatisticsResponse, error) {
	s.logger.Debugw("GetPoolStatistics called")

	totals, err := s.repo.GetTotals(ctx)
	if err != nil {
		s.logger.Errorw("GetPoolStatistics failed", "error", err)
		return nil, err
	}
	picks, err := s.repo.ListFinalizedPicks(ctx)
	if err != nil {
		s.logger.Errorw("GetPoolStatistics failed", "error", err)
		return nil, err
	}

	stats := model.PoolStatistics{
		ActiveParticipants: int(totals.ActiveParticipants),
		Rounds:             int(totals.Rounds),
		FinalizedMatches:   int(totals.FinalizedMatches),
		Predictions:        int(totals.Predictions),
	}
	for _, pick := range picks {
		home, away := pick.HomeGoals, pick.AwayGoals
		points := scoring.Points(
			scoring.Result{HomeGoals: &home, AwayGoals: &away, Finalized: true},
			scoring.Score{Home: pick.PredictedHome, Away: pick.PredictedAway},
		)
		switch {
		case scoring.IsExact(points):
			stats.ExactHits++
		case scoring.IsCorrect(points):
			stats.OutcomeHits++
		}
	}
	if len(picks) > 0 {
		hits := float64(stats.ExactHits + stats.OutcomeHits)
		stats.HitRate = math.Round(hits*1000/float64(len(picks))) / 10
	}

	s.logger.Infow("GetPoolStatistics completed", "predictions", stats.Predictions, "scored", len(picks))
	return &model.PoolStatisticsResponse{Statistics: stats}, nil
}

// GetRoundsStatistics returns totals for every round.
func (s *service) GetRoundsStatistics(ctx context.Context) (*model.RoundsStatisticsResponse, error) {
	s.logger.Debugw("GetRoundsStatistics called")

	rounds, err := s.repo.GetRoundsStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetRoundsStatistics failed", "error", err)
		return nil, err
	}

	if rounds == nil {
		rounds = []model.RoundStatistics{}
	}

	s.logger.Infow("GetRoundsStatistics completed", "count", len(rounds))
	return &model.RoundsStatisticsResponse{
		Rounds: rounds,
		Total:  len(rounds),
	}, nil
}
