// Package service provides business logic layer for prediction module.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/metrics"
	predictionModel "github.com/festy23/futamigo/internal/prediction/model"
	"github.com/festy23/futamigo/internal/prediction/repository"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	"github.com/festy23/futamigo/internal/scoring"
)

// Rejection reasons reported on the predictions_rejected_total metric.
const (
	reasonEmpty          = "empty"
	reasonInvalidGoals   = "invalid_goals"
	reasonDuplicateMatch = "duplicate_match"
	reasonRoundClosed    = "round_closed"
	reasonForeignMatch   = "match_not_in_round"
)

// Service defines the interface for prediction business logic operations.
type Service interface {
	// SubmitRoundPredictions stores every prediction of a submission or none.
	SubmitRoundPredictions(
		ctx context.Context,
		participantID, roundID uint,
		req *predictionModel.SubmitPredictionsRequest,
	) (*predictionModel.SubmitPredictionsResponse, error)

	// ListMyRoundPredictions returns the participant's predictions for a round.
	ListMyRoundPredictions(
		ctx context.Context,
		participantID, roundID uint,
	) (*predictionModel.RoundPredictionsResponse, error)

	// RoundSheet returns every active participant's predictions once the round
	// stops accepting them.
	RoundSheet(ctx context.Context, roundID uint) (*predictionModel.SheetResponse, error)
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

// New creates a new prediction service instance.
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

// SubmitRoundPredictions stores every prediction of a submission or none.
func (s *service) SubmitRoundPredictions(
	ctx context.Context,
	participantID, roundID uint,
	req *predictionModel.SubmitPredictionsRequest,
) (*predictionModel.SubmitPredictionsResponse, error) {
	if len(req.Predictions) == 0 {
		return nil, s.reject(reasonEmpty, predictionModel.ErrEmptySubmission)
	}

	seen := make(map[uint]struct{}, len(req.Predictions))
	for _, item := range req.Predictions {
		if item.HomeGoals == nil || item.AwayGoals == nil ||
			!scoring.ValidGoals(*item.HomeGoals) || !scoring.ValidGoals(*item.AwayGoals) {
			return nil, s.reject(reasonInvalidGoals, predictionModel.ErrInvalidGoals)
		}
		if _, dup := seen[item.MatchID]; dup {
			return nil, s.reject(reasonDuplicateMatch, predictionModel.ErrDuplicateMatch)
		}
		seen[item.MatchID] = struct{}{}
	}

	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		round, err := txRepo.GetRound(ctx, roundID)
		if err != nil {
			return err
		}
		if !round.AcceptsPredictions(now) {
			return s.reject(reasonRoundClosed, predictionModel.ErrRoundClosed)
		}

		ids, err := txRepo.MatchIDsInRound(ctx, roundID)
		if err != nil {
			return err
		}
		inRound := make(map[uint]struct{}, len(ids))
		for _, id := range ids {
			inRound[id] = struct{}{}
		}

		predictions := make([]predictionModel.Prediction, 0, len(req.Predictions))
		for _, item := range req.Predictions {
			if _, ok := inRound[item.MatchID]; !ok {
				return s.reject(reasonForeignMatch, predictionModel.ErrMatchNotInRound)
			}
			predictions = append(predictions, predictionModel.Prediction{
				ParticipantID: participantID,
				MatchID:       item.MatchID,
				HomeGoals:     *item.HomeGoals,
				AwayGoals:     *item.AwayGoals,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
		return txRepo.Upsert(ctx, predictions)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PredictionsAccepted.Add(float64(len(req.Predictions)))
	s.logger.Infow("predictions submitted",
		"participant_id", participantID,
		"round_id", roundID,
		"count", len(req.Predictions),
	)
	return &predictionModel.SubmitPredictionsResponse{RoundID: roundID, Saved: len(req.Predictions)}, nil
}

// ListMyRoundPredictions returns the participant's predictions for a round.
func (s *service) ListMyRoundPredictions(
	ctx context.Context,
	participantID, roundID uint,
) (*predictionModel.RoundPredictionsResponse, error) {
	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRoundPredictions(ctx, roundID, &participantID)
	if err != nil {
		return nil, err
	}

	resp := &predictionModel.RoundPredictionsResponse{
		Round:       roundModel.NewRoundStatus(*round, s.now()),
		Predictions: make([]predictionModel.PredictionView, 0, len(rows)),
	}
	for _, row := range rows {
		view := scored(row.PredictionView)
		resp.Points += view.Points
		resp.Predictions = append(resp.Predictions, view)
	}
	return resp, nil
}

// RoundSheet returns every active participant's predictions once the round
// stops accepting them.
func (s *service) RoundSheet(ctx context.Context, roundID uint) (*predictionModel.SheetResponse, error) {
	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if round.AcceptsPredictions(now) {
		return nil, predictionModel.ErrRoundStillOpen
	}

	participants, err := s.repo.ListActiveParticipants(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListRoundPredictions(ctx, roundID, nil)
	if err != nil {
		return nil, err
	}

	byParticipant := make(map[uint][]predictionModel.PredictionView, len(participants))
	for _, row := range rows {
		byParticipant[row.ParticipantID] = append(byParticipant[row.ParticipantID], scored(row.PredictionView))
	}

	resp := &predictionModel.SheetResponse{
		Round:        roundModel.NewRoundStatus(*round, now),
		Participants: make([]predictionModel.SheetRow, 0, len(participants)),
	}
	for _, p := range participants {
		row := predictionModel.SheetRow{
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
			Predictions:   byParticipant[p.ID],
		}
		if row.Predictions == nil {
			row.Predictions = []predictionModel.PredictionView{}
		}
		for _, v := range row.Predictions {
			row.Points += v.Points
		}
		resp.Participants = append(resp.Participants, row)
	}
	return resp, nil
}

func (s *service) reject(reason string, err error) error {
	s.metrics.PredictionsRejected.WithLabelValues(reason).Inc()
	return err
}

func scored(v predictionModel.PredictionView) predictionModel.PredictionView {
	v.Points = scoring.Points(
		scoring.Result{HomeGoals: v.HomeGoals, AwayGoals: v.AwayGoals, Finalized: v.Finalized},
		scoring.Score{Home: v.PredictedHome, Away: v.PredictedAway},
	)
	return v
}
