// Package repository provides data access layer for participant module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/database"
	leaderboardModel "github.com/festy23/futamigo/internal/leaderboard/model"
	"github.com/festy23/futamigo/internal/participant/model"
)

// Repository defines the interface for participant data access operations.
type Repository interface {
	// Create inserts a new participant.
	Create(ctx context.Context, p *model.Participant) error

	// GetByID finds a participant by id.
	GetByID(ctx context.Context, id uint) (*model.Participant, error)

	// GetByUsername finds a participant by username.
	GetByUsername(ctx context.Context, username string) (*model.Participant, error)

	// Update writes the given columns and returns the updated participant.
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Participant, error)

	// ListScoredPicks returns the participant's predictions on finalized matches.
	ListScoredPicks(ctx context.Context, id uint) ([]leaderboardModel.ScoredPick, error)

	// ListRecentPicks returns up to limit scored predictions, newest first.
	ListRecentPicks(ctx context.Context, id uint, limit int) ([]model.RecentPick, error)

	// ReferenceRound returns the highest round number holding a finalized match.
	ReferenceRound(ctx context.Context) (*int, error)

	// Position returns the participant's leaderboard position, or nil when unranked.
	Position(ctx context.Context, id uint) (*int, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new participant repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new participant.
func (r *repository) Create(ctx context.Context, p *model.Participant) error {
	r.logger.Debugw("Create called", "username", p.Username)

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return model.ErrUsernameTaken
		}
		r.logger.Errorw("Create database error", "username", p.Username, "error", err)
		return err
	}
	return nil
}

// GetByID finds a participant by id.
func (r *repository) GetByID(ctx context.Context, id uint) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrParticipantNotFound
		}
		r.logger.Errorw("GetByID database error", "participant_id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

// GetByUsername finds a participant by username.
func (r *repository) GetByUsername(ctx context.Context, username string) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrParticipantNotFound
		}
		r.logger.Errorw("GetByUsername database error", "username", username, "error", err)
		return nil, err
	}
	return &p, nil
}

// Update writes the given columns and returns the updated participant.
func (r *repository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Participant, error) {
	r.logger.Infow("Update called", "participant_id", id, "fields", len(fields))

	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		r.logger.Errorw("Update database error", "participant_id", id, "error", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrParticipantNotFound
	}

	return r.GetByID(ctx, id)
}

// ListScoredPicks returns the participant's predictions on finalized matches.
func (r *repository) ListScoredPicks(ctx context.Context, id uint) ([]leaderboardModel.ScoredPick, error) {
	picks := []leaderboardModel.ScoredPick{}
	err := r.db.WithContext(ctx).
		Table("predictions AS p").
		Select(`p.participant_id, r.number AS round_number,
			p.home_goals AS predicted_home, p.away_goals AS predicted_away,
			m.home_goals, m.away_goals, m.finalized`).
		Joins("JOIN matches m ON m.id = p.match_id").
		Joins("JOIN rounds r ON r.id = m.round_id").
		Where("p.participant_id = ? AND m.finalized = ?", id, true).
		Scan(&picks).Error
	return picks, err
}

// ListRecentPicks returns up to limit scored predictions, newest first.
func (r *repository) ListRecentPicks(ctx context.Context, id uint, limit int) ([]model.RecentPick, error) {
	picks := []model.RecentPick{}
	err := r.db.WithContext(ctx).
		Table("predictions AS p").
		Select(`m.id AS match_id, r.number AS round_number,
			home.code AS home_team, away.code AS away_team,
			p.home_goals AS predicted_home, p.away_goals AS predicted_away,
			m.home_goals, m.away_goals, p.created_at AS predicted_at`).
		Joins("JOIN matches m ON m.id = p.match_id").
		Joins("JOIN rounds r ON r.id = m.round_id").
		Joins("JOIN teams home ON home.id = m.home_team_id").
		Joins("JOIN teams away ON away.id = m.away_team_id").
		Where("p.participant_id = ? AND m.finalized = ?", id, true).
		Order("p.created_at DESC, p.id DESC").
		Limit(limit).
		Scan(&picks).Error
	return picks, err
}

// ReferenceRound returns the highest round number holding a finalized match.
func (r *repository) ReferenceRound(ctx context.Context) (*int, error) {
	var number *int
	err := r.db.WithContext(ctx).
		Table("matches AS m").
		Select("MAX(r.number)").
		Joins("JOIN rounds r ON r.id = m.round_id").
		Where("m.finalized = ?", true).
		Row().
		Scan(&number)
	return number, err
}

// Position returns the participant's leaderboard position, or nil when unranked.
func (r *repository) Position(ctx context.Context, id uint) (*int, error) {
	var entries []leaderboardModel.Entry
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", id).
		Limit(1).
		Find(&entries).Error
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0].Position, nil
}
