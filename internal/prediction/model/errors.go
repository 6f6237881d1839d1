package model

import "errors"

var (
	// ErrInvalidGoals indicates a predicted goal count outside 0..20.
	ErrInvalidGoals = errors.New("predicted goals must be between 0 and 20")
	// ErrRoundClosed indicates the round does not accept predictions now.
	ErrRoundClosed = errors.New("round is not accepting predictions")
	// ErrRoundStillOpen indicates the sheet was requested while predictions are still accepted.
	ErrRoundStillOpen = errors.New("round is still accepting predictions")
	// ErrMatchNotInRound indicates a prediction for a match of another round.
	ErrMatchNotInRound = errors.New("match does not belong to round")
	// ErrDuplicateMatch indicates the same match twice in one submission.
	ErrDuplicateMatch = errors.New("match predicted more than once")
	// ErrEmptySubmission indicates a submission without predictions.
	ErrEmptySubmission = errors.New("no predictions submitted")
)
