// Package repository provides data access layer for match module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/database"
	matchModel "github.com/festy23/futamigo/internal/match/model"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	teamModel "github.com/festy23/futamigo/internal/team/model"
)

const viewColumns = `m.id, m.round_id, r.number AS round_number,
	m.home_team_id, h.name AS home_team_name, h.code AS home_team_code,
	m.away_team_id, a.name AS away_team_name, a.code AS away_team_code,
	m.kickoff_at, m.home_goals, m.away_goals, m.finalized`

// Repository defines the interface for match data access operations.
type Repository interface {
	// Create inserts a new match.
	Create(ctx context.Context, match *matchModel.Match) error

	// GetByID finds a match by id.
	GetByID(ctx context.Context, id uint) (*matchModel.Match, error)

	// GetView finds a match joined with its round and teams.
	GetView(ctx context.Context, id uint) (*matchModel.MatchView, error)

	// ListViewsByRound returns the matches of a round ordered by kickoff.
	ListViewsByRound(ctx context.Context, roundID uint) ([]matchModel.MatchView, error)

	// UpdateResult stores goal counts and the finalized flag.
	UpdateResult(ctx context.Context, id uint, home, away *int, finalized bool) error

	// RoundExists checks whether a round exists.
	RoundExists(ctx context.Context, roundID uint) (bool, error)

	// CountTeams returns how many of the given team ids exist.
	CountTeams(ctx context.Context, ids ...uint) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new match repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new match.
func (r *repository) Create(ctx context.Context, match *matchModel.Match) error {
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return matchModel.ErrMatchExists
		}
		r.logger.Errorw("failed to create match",
			"round_id", match.RoundID,
			"home_team_id", match.HomeTeamID,
			"away_team_id", match.AwayTeamID,
			"error", err,
		)
		return err
	}
	return nil
}

// GetByID finds a match by id.
func (r *repository) GetByID(ctx context.Context, id uint) (*matchModel.Match, error) {
	var match matchModel.Match
	if err := r.db.WithContext(ctx).First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, matchModel.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *repository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("matches AS m").
		Select(viewColumns).
		Joins("JOIN rounds r ON r.id = m.round_id").
		Joins("JOIN teams h ON h.id = m.home_team_id").
		Joins("JOIN teams a ON a.id = m.away_team_id")
}

// GetView finds a match joined with its round and teams.
func (r *repository) GetView(ctx context.Context, id uint) (*matchModel.MatchView, error) {
	var views []matchModel.MatchView
	if err := r.views(ctx).Where("m.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, matchModel.ErrMatchNotFound
	}
	return &views[0], nil
}

// ListViewsByRound returns the matches of a round ordered by kickoff.
func (r *repository) ListViewsByRound(ctx context.Context, roundID uint) ([]matchModel.MatchView, error) {
	views := []matchModel.MatchView{}
	err := r.views(ctx).
		Where("m.round_id = ?", roundID).
		Order("m.kickoff_at ASC, m.id ASC").
		Scan(&views).Error
	return views, err
}

// UpdateResult stores goal counts and the finalized flag.
func (r *repository) UpdateResult(ctx context.Context, id uint, home, away *int, finalized bool) error {
	res := r.db.WithContext(ctx).
		Model(&matchModel.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"home_goals": home,
			"away_goals": away,
			"finalized":  finalized,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		r.logger.Errorw("failed to update match result", "match_id", id, "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return matchModel.ErrMatchNotFound
	}
	return nil
}

// RoundExists checks whether a round exists.
func (r *repository) RoundExists(ctx context.Context, roundID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&roundModel.Round{}).
		Where("id = ?", roundID).
		Count(&count).Error
	return count > 0, err
}

// CountTeams returns how many of the given team ids exist.
func (r *repository) CountTeams(ctx context.Context, ids ...uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}
