package model

import "errors"

var (
	// ErrTeamExists indicates that a team with the given name or code already exists.
	ErrTeamExists = errors.New("team already exists")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName indicates an empty or too long team name.
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrInvalidTeamCode indicates a code outside 1..3 characters.
	ErrInvalidTeamCode = errors.New("invalid team code")
)
