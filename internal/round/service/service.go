// Package service provides business logic layer for round module.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/metrics"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	"github.com/festy23/futamigo/internal/round/repository"
)

// Service defines the interface for round business logic operations.
type Service interface {
	// CreateRound creates a round. An active round deactivates every other one.
	CreateRound(ctx context.Context, req *roundModel.CreateRoundRequest) (*roundModel.RoundStatus, error)

	// GetRound returns a round with its derived status.
	GetRound(ctx context.Context, id uint) (*roundModel.RoundStatus, error)

	// ListRounds returns every round with its derived status.
	ListRounds(ctx context.Context) (*roundModel.RoundListResponse, error)

	// CurrentRound returns the active round, if any.
	CurrentRound(ctx context.Context) (*roundModel.CurrentRoundResponse, error)

	// ActivateRound makes id the only active round.
	ActivateRound(ctx context.Context, id uint) (*roundModel.RoundStatus, error)

	// DeactivateRound clears the active flag of id.
	DeactivateRound(ctx context.Context, id uint) (*roundModel.RoundStatus, error)

	// DiagnoseRounds reports the active-round situation.
	DiagnoseRounds(ctx context.Context) (*roundModel.Diagnosis, error)

	// RepairActiveRounds keeps a single active round when several are flagged.
	RepairActiveRounds(ctx context.Context, dryRun bool) (*roundModel.RepairResult, error)
}

// Option configures the service.
type Option func(*service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repo    repository.Repository
	db      *gorm.DB
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New creates a new round service instance.
func New(
	repo repository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	m *metrics.Metrics,
	opts ...Option,
) Service {
	s := &service{repo: repo, db: db, logger: logger, metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRound creates a round. An active round deactivates every other one.
func (s *service) CreateRound(ctx context.Context, req *roundModel.CreateRoundRequest) (*roundModel.RoundStatus, error) {
	if req.Number < roundModel.MinNumber || req.Number > roundModel.MaxNumber {
		return nil, roundModel.ErrInvalidNumber
	}
	if !req.StartsAt.Before(req.EndsAt) {
		return nil, roundModel.ErrInvalidWindow
	}

	now := s.now()
	round := &roundModel.Round{
		Number:    req.Number,
		Name:      strings.TrimSpace(req.Name),
		StartsAt:  req.StartsAt.UTC(),
		EndsAt:    req.EndsAt.UTC(),
		Active:    req.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	deactivated := []int{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		// Siblings go first so the insert never meets the single active index.
		if round.Active {
			var err error
			if deactivated, err = txRepo.DeactivateAllExcept(ctx, 0); err != nil {
				return err
			}
		}
		return txRepo.Create(ctx, round)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("round created",
		"round_id", round.ID,
		"number", round.Number,
		"active", round.Active,
		"deactivated", deactivated,
	)
	if round.Active {
		s.metrics.RoundActivations.Inc()
	}
	rs := roundModel.NewRoundStatus(*round, s.now())
	return &rs, nil
}

// GetRound returns a round with its derived status.
func (s *service) GetRound(ctx context.Context, id uint) (*roundModel.RoundStatus, error) {
	round, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rs := roundModel.NewRoundStatus(*round, s.now())
	return &rs, nil
}

// ListRounds returns every round with its derived status.
func (s *service) ListRounds(ctx context.Context) (*roundModel.RoundListResponse, error) {
	rounds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	resp := &roundModel.RoundListResponse{Rounds: make([]roundModel.RoundStatus, 0, len(rounds))}
	for _, r := range rounds {
		resp.Rounds = append(resp.Rounds, roundModel.NewRoundStatus(r, now))
	}
	return resp, nil
}

// CurrentRound returns the active round, if any. Should several be flagged,
// the one a repair would keep is reported.
func (s *service) CurrentRound(ctx context.Context) (*roundModel.CurrentRoundResponse, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	keep, ok := roundModel.PickKeeper(active, now)
	if !ok {
		return &roundModel.CurrentRoundResponse{}, nil
	}
	if len(active) > 1 {
		s.logger.Warnw("several rounds are active", "count", len(active), "reported", keep.Number)
	}
	rs := roundModel.NewRoundStatus(keep, now)
	return &roundModel.CurrentRoundResponse{Round: &rs}, nil
}

// ActivateRound makes id the only active round.
func (s *service) ActivateRound(ctx context.Context, id uint) (*roundModel.RoundStatus, error) {
	var (
		round       *roundModel.Round
		deactivated []int
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		var err error
		if round, err = txRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if deactivated, err = txRepo.DeactivateAllExcept(ctx, id); err != nil {
			return err
		}
		if !round.Active {
			if err := txRepo.SetActive(ctx, id, true); err != nil {
				return err
			}
			round.Active = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RoundActivations.Inc()
	s.logger.Infow("round activated", "round_id", id, "number", round.Number, "deactivated", deactivated)
	rs := roundModel.NewRoundStatus(*round, s.now())
	return &rs, nil
}

// DeactivateRound clears the active flag of id.
func (s *service) DeactivateRound(ctx context.Context, id uint) (*roundModel.RoundStatus, error) {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	round, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("round deactivated", "round_id", id, "number", round.Number)
	rs := roundModel.NewRoundStatus(*round, s.now())
	return &rs, nil
}

// DiagnoseRounds reports the active-round situation.
func (s *service) DiagnoseRounds(ctx context.Context) (*roundModel.Diagnosis, error) {
	rounds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	d := roundModel.Diagnose(rounds, s.now())
	s.logger.Debugw("rounds diagnosed", "recommendation", d.Recommendation, "active", len(d.ActiveRounds))
	return &d, nil
}

// RepairActiveRounds keeps a single active round when several are flagged.
func (s *service) RepairActiveRounds(ctx context.Context, dryRun bool) (*roundModel.RepairResult, error) {
	result := &roundModel.RepairResult{Deactivated: []int{}, DryRun: dryRun}
	now := s.now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		active, err := txRepo.ListActive(ctx)
		if err != nil {
			return err
		}
		keep, ok := roundModel.PickKeeper(active, now)
		if !ok {
			return nil
		}
		result.Kept = &keep
		if len(active) < 2 {
			return nil
		}
		if dryRun {
			for _, r := range active {
				if r.ID != keep.ID {
					result.Deactivated = append(result.Deactivated, r.Number)
				}
			}
			return nil
		}
		result.Deactivated, err = txRepo.DeactivateAllExcept(ctx, keep.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(result.Deactivated) > 0 {
		s.logger.Infow("active rounds repaired",
			"kept", result.Kept.Number,
			"deactivated", result.Deactivated,
			"dry_run", dryRun,
		)
	}
	return result, nil
}
