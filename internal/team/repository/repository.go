// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/database"
	teamModel "github.com/festy23/futamigo/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a new team.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds a team by id.
	GetByID(ctx context.Context, id uint) (*teamModel.Team, error)

	// List returns all teams ordered by name.
	List(ctx context.Context) ([]teamModel.Team, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	r.logger.Debugw("creating team", "name", team.Name, "code", team.Code)

	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return teamModel.ErrTeamExists
		}
		r.logger.Errorw("failed to create team", "name", team.Name, "error", err)
		return err
	}
	return nil
}

// GetByID finds a team by id.
func (r *repository) GetByID(ctx context.Context, id uint) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// List returns all teams ordered by name.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	teams := []teamModel.Team{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
