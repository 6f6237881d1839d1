package model

import "errors"

var (
	// ErrMatchNotFound indicates that the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchExists indicates the same fixture already exists in the round.
	ErrMatchExists = errors.New("match already exists")
	// ErrSameTeams indicates a team playing itself.
	ErrSameTeams = errors.New("home and away teams must differ")
	// ErrUnknownTeam indicates a team id that does not exist.
	ErrUnknownTeam = errors.New("team not found")
	// ErrInvalidGoals indicates a goal count outside 0..20.
	ErrInvalidGoals = errors.New("goals must be between 0 and 20")
	// ErrIncompleteResult indicates a finalized result without both goal counts.
	ErrIncompleteResult = errors.New("finalized result requires both goal counts")
	// ErrRecomputeFailed indicates the result was stored but the leaderboard was not refreshed.
	ErrRecomputeFailed = errors.New("leaderboard recompute failed")
)
