// Package repository provides data access layer for prediction module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	participantModel "github.com/festy23/futamigo/internal/participant/model"
	predictionModel "github.com/festy23/futamigo/internal/prediction/model"
	roundModel "github.com/festy23/futamigo/internal/round/model"
)

// Repository defines the interface for prediction data access operations.
type Repository interface {
	// GetRound finds a round by id.
	GetRound(ctx context.Context, roundID uint) (*roundModel.Round, error)

	// MatchIDsInRound returns the ids of every match of a round.
	MatchIDsInRound(ctx context.Context, roundID uint) ([]uint, error)

	// Upsert inserts predictions, overwriting the goals of existing
	// (participant, match) pairs.
	Upsert(ctx context.Context, predictions []predictionModel.Prediction) error

	// ListRoundPredictions returns the predictions for the matches of a round,
	// optionally limited to one participant.
	ListRoundPredictions(
		ctx context.Context,
		roundID uint,
		participantID *uint,
	) ([]predictionModel.ParticipantPrediction, error)

	// ListActiveParticipants returns active participants ordered by display name.
	ListActiveParticipants(ctx context.Context) ([]participantModel.Participant, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new prediction repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetRound finds a round by id.
func (r *repository) GetRound(ctx context.Context, roundID uint) (*roundModel.Round, error) {
	var round roundModel.Round
	if err := r.db.WithContext(ctx).First(&round, roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roundModel.ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

// MatchIDsInRound returns the ids of every match of a round.
func (r *repository) MatchIDsInRound(ctx context.Context, roundID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("matches").
		Where("round_id = ?", roundID).
		Pluck("id", &ids).Error
	return ids, err
}

// Upsert inserts predictions, overwriting the goals of existing pairs.
func (r *repository) Upsert(ctx context.Context, predictions []predictionModel.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_id"}, {Name: "match_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"home_goals", "away_goals", "updated_at"}),
		}).
		Create(&predictions).Error
	if err != nil {
		r.logger.Errorw("failed to upsert predictions", "count", len(predictions), "error", err)
		return err
	}
	return nil
}

// ListRoundPredictions returns the predictions for the matches of a round.
func (r *repository) ListRoundPredictions(
	ctx context.Context,
	roundID uint,
	participantID *uint,
) ([]predictionModel.ParticipantPrediction, error) {
	query := r.db.WithContext(ctx).
		Table("predictions AS p").
		Select(`p.participant_id, p.match_id, h.code AS home_team_code, a.code AS away_team_code,
			m.kickoff_at, p.home_goals AS predicted_home, p.away_goals AS predicted_away,
			m.home_goals, m.away_goals, m.finalized, p.updated_at`).
		Joins("JOIN matches m ON m.id = p.match_id").
		Joins("JOIN teams h ON h.id = m.home_team_id").
		Joins("JOIN teams a ON a.id = m.away_team_id").
		Where("m.round_id = ?", roundID)
	if participantID != nil {
		query = query.Where("p.participant_id = ?", *participantID)
	}

	rows := []predictionModel.ParticipantPrediction{}
	err := query.Order("m.kickoff_at ASC, m.id ASC").Scan(&rows).Error
	return rows, err
}

// ListActiveParticipants returns active participants ordered by display name.
func (r *repository) ListActiveParticipants(ctx context.Context) ([]participantModel.Participant, error) {
	participants := []participantModel.Participant{}
	err := r.db.WithContext(ctx).
		Select("id", "display_name").
		Where("active = ?", true).
		Order("display_name ASC, id ASC").
		Find(&participants).Error
	return participants, err
}
