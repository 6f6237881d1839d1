package model

import "time"

// CreateRoundRequest represents the request to create a round.
type CreateRoundRequest struct {
	Number   int       `json:"number" binding:"required"`
	Name     string    `json:"name"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	Active   bool      `json:"active"`
}

// RoundStatus is a round together with its derived status.
type RoundStatus struct {
	Round
	Status             Status `json:"status"`
	AcceptsPredictions bool   `json:"accepts_predictions"`
}

// NewRoundStatus derives the status of r at now.
func NewRoundStatus(r Round, now time.Time) RoundStatus {
	s := r.Status(now)
	return RoundStatus{Round: r, Status: s, AcceptsPredictions: s == StatusCurrent}
}

// RoundListResponse wraps a list of rounds.
type RoundListResponse struct {
	Rounds []RoundStatus `json:"rounds"`
}

// CurrentRoundResponse is the active round, when there is one.
type CurrentRoundResponse struct {
	Round *RoundStatus `json:"round"`
}

// RepairResult reports what a repair changed.
type RepairResult struct {
	Kept        *Round `json:"kept,omitempty"`
	Deactivated []int  `json:"deactivated"`
	DryRun      bool   `json:"dry_run"`
}
