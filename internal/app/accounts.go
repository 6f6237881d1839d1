package app

import (
	"context"
	"errors"

	"github.com/festy23/futamigo/internal/middleware"
	participantModel "github.com/festy23/futamigo/internal/participant/model"
	participantRepository "github.com/festy23/futamigo/internal/participant/repository"
)

// participantAccounts serves the authenticator from the participants table.
type participantAccounts struct {
	repo participantRepository.Repository
}

func (a participantAccounts) Account(ctx context.Context, participantID uint) (middleware.Account, error) {
	p, err := a.repo.GetByID(ctx, participantID)
	if errors.Is(err, participantModel.ErrParticipantNotFound) {
		return middleware.Account{}, middleware.ErrAccountNotFound
	}
	if err != nil {
		return middleware.Account{}, err
	}
	return middleware.Account{Active: p.Active, Admin: p.Admin}, nil
}
