// Package service provides business logic layer for match module.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	leaderboardModel "github.com/festy23/futamigo/internal/leaderboard/model"
	matchModel "github.com/festy23/futamigo/internal/match/model"
	"github.com/festy23/futamigo/internal/match/repository"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	"github.com/festy23/futamigo/internal/scoring"
)

// Recomputer rebuilds the leaderboard after a result changes.
type Recomputer interface {
	Recompute(ctx context.Context) (*leaderboardModel.RecomputeResponse, error)
}

// Service defines the interface for match business logic operations.
type Service interface {
	// CreateMatch schedules a match between two existing teams in a round.
	CreateMatch(ctx context.Context, req *matchModel.CreateMatchRequest) (*matchModel.MatchView, error)

	// GetMatch returns a match with its round and teams.
	GetMatch(ctx context.Context, id uint) (*matchModel.MatchView, error)

	// ListRoundMatches returns the matches of a round.
	ListRoundMatches(ctx context.Context, roundID uint) (*matchModel.MatchListResponse, error)

	// SetResult stores a score and recomputes the leaderboard. Repeating the
	// stored result changes nothing.
	SetResult(ctx context.Context, id uint, req *matchModel.SetResultRequest) (*matchModel.SetResultResponse, error)
}

type service struct {
	repo       repository.Repository
	db         *gorm.DB
	recomputer Recomputer
	logger     *zap.SugaredLogger
}

// New creates a new match service instance.
func New(repo repository.Repository, db *gorm.DB, recomputer Recomputer, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, db: db, recomputer: recomputer, logger: logger}
}

// CreateMatch schedules a match between two existing teams in a round.
func (s *service) CreateMatch(ctx context.Context, req *matchModel.CreateMatchRequest) (*matchModel.MatchView, error) {
	if req.HomeTeamID == req.AwayTeamID {
		return nil, matchModel.ErrSameTeams
	}

	exists, err := s.repo.RoundExists(ctx, req.RoundID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, roundModel.ErrRoundNotFound
	}

	teams, err := s.repo.CountTeams(ctx, req.HomeTeamID, req.AwayTeamID)
	if err != nil {
		return nil, err
	}
	if teams != 2 {
		return nil, matchModel.ErrUnknownTeam
	}

	now := time.Now()
	match := &matchModel.Match{
		RoundID:    req.RoundID,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  req.KickoffAt.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Infow("match created",
		"match_id", match.ID,
		"round_id", match.RoundID,
		"home_team_id", match.HomeTeamID,
		"away_team_id", match.AwayTeamID,
	)
	return s.repo.GetView(ctx, match.ID)
}

// GetMatch returns a match with its round and teams.
func (s *service) GetMatch(ctx context.Context, id uint) (*matchModel.MatchView, error) {
	return s.repo.GetView(ctx, id)
}

// ListRoundMatches returns the matches of a round.
func (s *service) ListRoundMatches(ctx context.Context, roundID uint) (*matchModel.MatchListResponse, error) {
	exists, err := s.repo.RoundExists(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, roundModel.ErrRoundNotFound
	}

	views, err := s.repo.ListViewsByRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	return &matchModel.MatchListResponse{RoundID: roundID, Matches: views}, nil
}

// SetResult stores a score and recomputes the leaderboard.
func (s *service) SetResult(
	ctx context.Context,
	id uint,
	req *matchModel.SetResultRequest,
) (*matchModel.SetResultResponse, error) {
	if err := validateResult(req); err != nil {
		return nil, err
	}

	changed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		match, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if match.SameResult(req.HomeGoals, req.AwayGoals, req.Finalized) {
			return nil
		}
		changed = true
		return txRepo.UpdateResult(ctx, id, req.HomeGoals, req.AwayGoals, req.Finalized)
	})
	if err != nil {
		return nil, err
	}

	view, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &matchModel.SetResultResponse{Match: *view, Changed: changed}
	if !changed {
		s.logger.Debugw("match result unchanged", "match_id", id)
		return resp, nil
	}

	s.logger.Infow("match result stored",
		"match_id", id,
		"home_goals", req.HomeGoals,
		"away_goals", req.AwayGoals,
		"finalized", req.Finalized,
	)

	board, err := s.recomputer.Recompute(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", matchModel.ErrRecomputeFailed, err)
	}
	ranked := len(board.Entries)
	resp.Ranked = &ranked
	return resp, nil
}

func validateResult(req *matchModel.SetResultRequest) error {
	for _, g := range []*int{req.HomeGoals, req.AwayGoals} {
		if g != nil && !scoring.ValidGoals(*g) {
			return matchModel.ErrInvalidGoals
		}
	}
	if req.Finalized && (req.HomeGoals == nil || req.AwayGoals == nil) {
		return matchModel.ErrIncompleteResult
	}
	return nil
}
