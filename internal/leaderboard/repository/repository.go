// Package repository provides data access layer for leaderboard module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	leaderboardModel "github.com/festy23/futamigo/internal/leaderboard/model"
)

const insertBatchSize = 200

// Repository defines the interface for leaderboard data access operations.
type Repository interface {
	// ListContenders returns active, visible participants ordered by id.
	ListContenders(ctx context.Context) ([]leaderboardModel.Contender, error)

	// ListScoredPicks returns every prediction on a finalized match.
	ListScoredPicks(ctx context.Context) ([]leaderboardModel.ScoredPick, error)

	// ReferenceRound returns the highest round number holding a finalized
	// match, or nil when no match is finalized.
	ReferenceRound(ctx context.Context) (*int, error)

	// ReplaceAll deletes every entry and inserts the given ones.
	ReplaceAll(ctx context.Context, entries []leaderboardModel.Entry) error

	// List returns the stored leaderboard ordered by position.
	List(ctx context.Context) ([]leaderboardModel.EntryView, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new leaderboard repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// ListContenders returns active, visible participants ordered by id.
func (r *repository) ListContenders(ctx context.Context) ([]leaderboardModel.Contender, error) {
	contenders := []leaderboardModel.Contender{}
	err := r.db.WithContext(ctx).
		Table("participants").
		Select("id, display_name").
		Where("active = ? AND invisible = ?", true, false).
		Order("id ASC").
		Scan(&contenders).Error
	return contenders, err
}

// ListScoredPicks returns every prediction on a finalized match.
func (r *repository) ListScoredPicks(ctx context.Context) ([]leaderboardModel.ScoredPick, error) {
	picks := []leaderboardModel.ScoredPick{}
	err := r.db.WithContext(ctx).
		Table("predictions AS p").
		Select(`p.participant_id, r.number AS round_number,
			p.home_goals AS predicted_home, p.away_goals AS predicted_away,
			m.home_goals, m.away_goals, m.finalized`).
		Joins("JOIN matches m ON m.id = p.match_id").
		Joins("JOIN rounds r ON r.id = m.round_id").
		Where("m.finalized = ?", true).
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
	if err != nil {
		return nil, err
	}
	return number, nil
}

// ReplaceAll deletes every entry and inserts the given ones. Callers run it
// inside a transaction so readers never see a partial leaderboard.
func (r *repository) ReplaceAll(ctx context.Context, entries []leaderboardModel.Entry) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&leaderboardModel.Entry{}).Error
	if err != nil {
		r.logger.Errorw("failed to clear leaderboard", "error", err)
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(entries, insertBatchSize).Error; err != nil {
		r.logger.Errorw("failed to insert leaderboard", "entries", len(entries), "error", err)
		return err
	}
	return nil
}

// List returns the stored leaderboard ordered by position.
func (r *repository) List(ctx context.Context) ([]leaderboardModel.EntryView, error) {
	views := []leaderboardModel.EntryView{}
	err := r.db.WithContext(ctx).
		Table("leaderboard_entries AS e").
		Select(`e.position, e.participant_id, p.display_name, p.avatar_url,
			e.points, e.correct, e.exact, e.last_round_balance, e.updated_at`).
		Joins("JOIN participants p ON p.id = e.participant_id").
		Order("e.position ASC").
		Scan(&views).Error
	return views, err
}
