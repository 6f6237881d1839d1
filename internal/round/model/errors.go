package model

import "errors"

var (
	// ErrRoundNotFound indicates that the requested round does not exist.
	ErrRoundNotFound = errors.New("round not found")
	// ErrRoundExists indicates that a round with the given number already exists.
	ErrRoundExists = errors.New("round already exists")
	// ErrInvalidNumber indicates a round number outside 1..38.
	ErrInvalidNumber = errors.New("invalid round number")
	// ErrInvalidWindow indicates a start that is not strictly before the end.
	ErrInvalidWindow = errors.New("round start must be before its end")
)
