// Package service recomputes and serves the leaderboard.
package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	leaderboardModel "github.com/festy23/futamigo/internal/leaderboard/model"
	"github.com/festy23/futamigo/internal/leaderboard/repository"
	"github.com/festy23/futamigo/internal/metrics"
)

// Service defines the interface for leaderboard operations.
type Service interface {
	// Recompute rebuilds the leaderboard from scratch and swaps it in
	// atomically. Concurrent calls run one at a time.
	Recompute(ctx context.Context) (*leaderboardModel.RecomputeResponse, error)

	// GetLeaderboard returns the stored leaderboard.
	GetLeaderboard(ctx context.Context) (*leaderboardModel.LeaderboardResponse, error)
}

type service struct {
	mu      sync.Mutex
	repo    repository.Repository
	db      *gorm.DB
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

// New creates a new leaderboard service instance. Share one instance per
// process so recomputations stay serialized.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger, m *metrics.Metrics) Service {
	return &service{repo: repo, db: db, logger: logger, metrics: m}
}

// Recompute rebuilds the leaderboard from scratch and swaps it in atomically.
func (s *service) Recompute(ctx context.Context) (*leaderboardModel.RecomputeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	var resp *leaderboardModel.RecomputeResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		contenders, err := txRepo.ListContenders(ctx)
		if err != nil {
			return err
		}
		picks, err := txRepo.ListScoredPicks(ctx)
		if err != nil {
			return err
		}
		ref, err := txRepo.ReferenceRound(ctx)
		if err != nil {
			return err
		}

		ranked := leaderboardModel.Rank(leaderboardModel.Tally(contenders, picks, ref))

		now := time.Now()
		entries := make([]leaderboardModel.Entry, len(ranked))
		for i, r := range ranked {
			entries[i] = leaderboardModel.Entry{
				ParticipantID:    r.ParticipantID,
				Position:         r.Position,
				Points:           r.Points,
				Correct:          r.Correct,
				Exact:            r.Exact,
				LastRoundBalance: r.LastRoundBalance,
				UpdatedAt:        now,
			}
		}
		if err := txRepo.ReplaceAll(ctx, entries); err != nil {
			return err
		}

		resp = &leaderboardModel.RecomputeResponse{Entries: ranked, ReferenceRound: ref}
		return nil
	})
	s.metrics.RecomputeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.Recomputes.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Errorw("leaderboard recompute failed", "error", err)
		return nil, err
	}

	s.metrics.Recomputes.WithLabelValues(metrics.ResultSuccess).Inc()
	s.metrics.LeaderboardSize.Set(float64(len(resp.Entries)))
	s.logger.Infow("leaderboard recomputed",
		"entries", len(resp.Entries),
		"reference_round", resp.ReferenceRound,
		"duration", time.Since(start),
	)
	return resp, nil
}

// GetLeaderboard returns the stored leaderboard.
func (s *service) GetLeaderboard(ctx context.Context) (*leaderboardModel.LeaderboardResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &leaderboardModel.LeaderboardResponse{Entries: entries, Total: len(entries)}, nil
}
