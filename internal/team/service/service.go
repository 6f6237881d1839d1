// Package service provides business logic layer for team module.
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	teamModel "github.com/festy23/futamigo/internal/team/model"
	"github.com/festy23/futamigo/internal/team/repository"
)

const maxNameLength = 64

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam registers a team. The code is stored upper-case.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error)

	// GetTeam returns a team by id.
	GetTeam(ctx context.Context, id uint) (*teamModel.Team, error)

	// ListTeams returns every team.
	ListTeams(ctx context.Context) (*teamModel.TeamListResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// CreateTeam registers a team. The code is stored upper-case.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, teamModel.ErrInvalidTeamName
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if n := utf8.RuneCountInString(code); n < 1 || n > 3 {
		return nil, teamModel.ErrInvalidTeamCode
	}

	team := &teamModel.Team{
		Name:      name,
		Code:      code,
		CrestURL:  req.CrestURL,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Infow("team created", "team_id", team.ID, "code", team.Code)
	return team, nil
}

// GetTeam returns a team by id.
func (s *service) GetTeam(ctx context.Context, id uint) (*teamModel.Team, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTeams returns every team.
func (s *service) ListTeams(ctx context.Context) (*teamModel.TeamListResponse, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &teamModel.TeamListResponse{Teams: teams}, nil
}
