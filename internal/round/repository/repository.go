// Package repository provides data access layer for round module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/database"
	roundModel "github.com/festy23/futamigo/internal/round/model"
)

// Repository defines the interface for round data access operations.
type Repository interface {
	// Create inserts a new round.
	Create(ctx context.Context, round *roundModel.Round) error

	// GetByID finds a round by id.
	GetByID(ctx context.Context, id uint) (*roundModel.Round, error)

	// List returns every round ordered by number.
	List(ctx context.Context) ([]roundModel.Round, error)

	// ListActive returns the rounds flagged active ordered by number.
	ListActive(ctx context.Context) ([]roundModel.Round, error)

	// SetActive sets the active flag of one round.
	SetActive(ctx context.Context, id uint, active bool) error

	// DeactivateAllExcept clears the active flag of every round but keepID.
	// It returns the numbers of the rounds that changed.
	DeactivateAllExcept(ctx context.Context, keepID uint) ([]int, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new round repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new round.
func (r *repository) Create(ctx context.Context, round *roundModel.Round) error {
	if err := r.db.WithContext(ctx).Create(round).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return roundModel.ErrRoundExists
		}
		r.logger.Errorw("failed to create round", "number", round.Number, "error", err)
		return err
	}
	return nil
}

// GetByID finds a round by id.
func (r *repository) GetByID(ctx context.Context, id uint) (*roundModel.Round, error) {
	var round roundModel.Round
	if err := r.db.WithContext(ctx).First(&round, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roundModel.ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

// List returns every round ordered by number.
func (r *repository) List(ctx context.Context) ([]roundModel.Round, error) {
	rounds := []roundModel.Round{}
	err := r.db.WithContext(ctx).Order("number ASC").Find(&rounds).Error
	return rounds, err
}

// ListActive returns the rounds flagged active ordered by number.
func (r *repository) ListActive(ctx context.Context) ([]roundModel.Round, error) {
	rounds := []roundModel.Round{}
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("number ASC").
		Find(&rounds).Error
	return rounds, err
}

// SetActive sets the active flag of one round.
func (r *repository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&roundModel.Round{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return roundModel.ErrRoundNotFound
	}
	r.logger.Debugw("round flag updated", "round_id", id, "active", active)
	return nil
}

// DeactivateAllExcept clears the active flag of every round but keepID.
func (r *repository) DeactivateAllExcept(ctx context.Context, keepID uint) ([]int, error) {
	var numbers []int
	err := r.db.WithContext(ctx).
		Model(&roundModel.Round{}).
		Where("active = ? AND id <> ?", true, keepID).
		Order("number ASC").
		Pluck("number", &numbers).Error
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return []int{}, nil
	}

	err = r.db.WithContext(ctx).
		Model(&roundModel.Round{}).
		Where("active = ? AND id <> ?", true, keepID).
		Updates(map[string]interface{}{"active": false, "updated_at": time.Now()}).Error
	if err != nil {
		return nil, err
	}
	r.logger.Debugw("rounds deactivated", "numbers", numbers, "kept_id", keepID)
	return numbers, nil
}
