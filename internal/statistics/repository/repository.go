// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetTotals returns pool-wide row counts.
	GetTotals(ctx context.Context) (*model.Totals, error)

	// ListFinalizedPicks returns every prediction on a finalized match.
	ListFinalizedPicks(ctx context.Context) ([]model.Pick, error)

	// GetRoundsStatistics returns per-round totals ordered by round number.
	GetRoundsStatistics(ctx context.Context) ([]model.RoundStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetTotals returns pool-wide row counts.
func (r *repository) GetTotals(ctx context.Context) (*model.Totals, error) {
	r.logger.Debugw("GetTotals called")

	var totals model.Totals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM participants WHERE active = ?) AS active_participants,
			(SELECT COUNT(*) FROM rounds) AS rounds,
			(SELECT COUNT(*) FROM matches WHERE finalized = ?) AS finalized_matches,
			(SELECT COUNT(*) FROM predictions) AS predictions
	`, true, true).Scan(&totals).Error
	if err != nil {
		r.logger.Errorw("GetTotals database error", "error", err)
		return nil, err
	}

	r.logger.Debugw("GetTotals completed", "predictions", totals.Predictions)
	return &totals, nil
}

// ListFinalizedPicks returns every prediction on a finalized match.
func (r *repository) ListFinalizedPicks(ctx context.Context) ([]model.Pick, error) {
	r.logger.Debugw("ListFinalizedPicks called")

	picks := []model.Pick{}
	err := r.db.WithContext(ctx).
		Table("predictions AS p").
		Select(`p.home_goals AS predicted_home, p.away_goals AS predicted_away,
			m.home_goals, m.away_goals`).
		Joins("JOIN matches m ON m.id = p.match_id").
		Where("m.finalized = ? AND m.home_goals IS NOT NULL AND m.away_goals IS NOT NULL", true).
		Scan(&picks).Error
	if err != nil {
		r.logger.Errorw("ListFinalizedPicks database error", "error", err)
		return nil, err
	}

	r.logger.Debugw("ListFinalizedPicks completed", "count", len(picks))
	return picks, nil
}

// GetRoundsStatistics returns per-round totals ordered by round number.
func (r *repository) GetRoundsStatistics(ctx context.Context) ([]model.RoundStatistics, error) {
	r.logger.Debugw("GetRoundsStatistics called")

	var stats []model.RoundStatistics
	err := r.db.WithContext(ctx).
		Table("rounds").
		Select(`
			rounds.id AS round_id,
			rounds.number,
			rounds.name,
			COALESCE(match_counts.matches, 0) AS matches,
			COALESCE(match_counts.finalized_matches, 0) AS finalized_matches,
			COALESCE(prediction_counts.predictions, 0) AS predictions,
			COALESCE(prediction_counts.participants, 0) AS participants
		`).
		Joins(`
			LEFT JOIN (
				SELECT round_id,
					COUNT(*) AS matches,
					SUM(CASE WHEN finalized THEN 1 ELSE 0 END) AS finalized_matches
				FROM matches
				GROUP BY round_id
			) match_counts ON match_counts.round_id = rounds.id
		`).
		Joins(`
			LEFT JOIN (
				SELECT m.round_id,
					COUNT(*) AS predictions,
					COUNT(DISTINCT p.participant_id) AS participants
				FROM predictions p
				JOIN matches m ON m.id = p.match_id
				GROUP BY m.round_id
			) prediction_counts ON prediction_counts.round_id = rounds.id
		`).
		Order("rounds.number ASC").
		Scan(&stats).Error
	if err != nil {
		r.logger.Errorw("GetRoundsStatistics database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.RoundStatistics{}
	}

	r.logger.Debugw("GetRoundsStatistics completed", "count", len(stats))
	return stats, nil
}
