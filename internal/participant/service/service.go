// Package service provides business logic layer for participant module.
package service

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/auth"
	leaderboardModel "github.com/festy23/futamigo/internal/leaderboard/model"
	"github.com/festy23/futamigo/internal/participant/model"
	"github.com/festy23/futamigo/internal/participant/repository"
	"github.com/festy23/futamigo/internal/scoring"
)

const (
	minPasswordLength    = 8
	maxPasswordLength    = 72
	maxDisplayNameLength = 100
	recentPicksLimit     = 10
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,64}$`)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(participantID uint, admin bool) (string, time.Time, error)
}

// Recomputer rebuilds the leaderboard when eligibility changes.
type Recomputer interface {
	Recompute(ctx context.Context) (*leaderboardModel.RecomputeResponse, error)
}

// Service defines the interface for participant business logic operations.
type Service interface {
	// Register creates an active, visible, non-admin participant.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Participant, error)

	// Login checks credentials and issues an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Me returns the participant behind the token.
	Me(ctx context.Context, id uint) (*model.Participant, error)

	// UpdateProfile changes display name and avatar.
	UpdateProfile(ctx context.Context, id uint, req *model.UpdateProfileRequest) (*model.Participant, error)

	// SetFlags changes the active, invisible and admin flags.
	SetFlags(ctx context.Context, id uint, req *model.SetFlagsRequest) (*model.Participant, error)

	// Profile returns a participant with scoring statistics.
	Profile(ctx context.Context, id uint) (*model.ProfileResponse, error)
}

type service struct {
	repo       repository.Repository
	tokens     TokenIssuer
	recomputer Recomputer
	logger     *zap.SugaredLogger
}

// New creates a new participant service instance.
func New(
	repo repository.Repository,
	tokens TokenIssuer,
	recomputer Recomputer,
	logger *zap.SugaredLogger,
) Service {
	return &service{repo: repo, tokens: tokens, recomputer: recomputer, logger: logger}
}

// Register creates an active, visible, non-admin participant.
func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Participant, error) {
	username := strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(username) {
		return nil, model.ErrInvalidUsername
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		return nil, model.ErrWeakPassword
	}
	displayName, err := validDisplayName(req.DisplayName)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Participant{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Infow("participant registered", "participant_id", p.ID, "username", p.Username)
	return p, nil
}

// Login checks credentials and issues an access token.
func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	p, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(p.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Infow("login rejected", "participant_id", p.ID, "reason", "password")
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if !p.Active {
		s.logger.Infow("login rejected", "participant_id", p.ID, "reason", "inactive")
		return nil, model.ErrParticipantInactive
	}

	token, expires, err := s.tokens.Issue(p.ID, p.Admin)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("participant logged in", "participant_id", p.ID)
	return &model.LoginResponse{Token: token, ExpiresAt: expires, Participant: *p}, nil
}

// Me returns the participant behind the token.
func (s *service) Me(ctx context.Context, id uint) (*model.Participant, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile changes display name and avatar.
func (s *service) UpdateProfile(
	ctx context.Context,
	id uint,
	req *model.UpdateProfileRequest,
) (*model.Participant, error) {
	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		name, err := validDisplayName(*req.DisplayName)
		if err != nil {
			return nil, err
		}
		fields["display_name"] = name
	}
	if req.AvatarURL != nil {
		if avatar := strings.TrimSpace(*req.AvatarURL); avatar != "" {
			fields["avatar_url"] = avatar
		} else {
			fields["avatar_url"] = nil
		}
	}
	if len(fields) == 0 {
		return nil, model.ErrNoChanges
	}

	return s.repo.Update(ctx, id, fields)
}

// SetFlags changes the active, invisible and admin flags. The leaderboard is
// recomputed when the change moves the participant on or off it.
func (s *service) SetFlags(ctx context.Context, id uint, req *model.SetFlagsRequest) (*model.Participant, error) {
	fields := map[string]interface{}{}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if req.Invisible != nil {
		fields["invisible"] = *req.Invisible
	}
	if req.Admin != nil {
		fields["admin"] = *req.Admin
	}
	if len(fields) == 0 {
		return nil, model.ErrNoChanges
	}

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	after, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("participant flags updated",
		"participant_id", id,
		"active", after.Active,
		"invisible", after.Invisible,
		"admin", after.Admin,
	)

	if before.Ranked() != after.Ranked() {
		if _, err := s.recomputer.Recompute(ctx); err != nil {
			s.logger.Warnw("leaderboard not refreshed after flag change", "participant_id", id, "error", err)
		}
	}
	return after, nil
}

// Profile returns an active participant with scoring statistics and the
// latest scored picks. Inactive participants are reported as not found.
func (s *service) Profile(ctx context.Context, id uint) (*model.ProfileResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, model.ErrParticipantNotFound
	}
	picks, err := s.repo.ListScoredPicks(ctx, id)
	if err != nil {
		return nil, err
	}
	ref, err := s.repo.ReferenceRound(ctx)
	if err != nil {
		return nil, err
	}
	position, err := s.repo.Position(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListRecentPicks(ctx, id, recentPicksLimit)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		rp := &recent[i]
		rp.Points = scoring.Points(
			scoring.Result{HomeGoals: rp.HomeGoals, AwayGoals: rp.AwayGoals, Finalized: true},
			scoring.Score{Home: rp.PredictedHome, Away: rp.PredictedAway},
		)
	}

	tally := leaderboardModel.Tally([]leaderboardModel.Contender{{ID: p.ID}}, picks, ref)[0]
	return &model.ProfileResponse{
		Participant: *p,
		Stats: model.ProfileStats{
			Predictions:      len(picks),
			Correct:          tally.Correct,
			Exact:            tally.Exact,
			Points:           tally.Points,
			LastRoundBalance: tally.LastRoundBalance,
			Accuracy:         accuracy(tally.Correct, len(picks)),
			Position:         position,
		},
		Recent: recent,
	}, nil
}

func validDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
		return "", model.ErrInvalidDisplayName
	}
	return name, nil
}

// accuracy is the share of correct picks as a percentage with one decimal.
func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)*1000/float64(total)) / 10
}
