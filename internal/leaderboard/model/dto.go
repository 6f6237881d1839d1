package model

import "time"

// EntryView is a leaderboard line joined with the participant.
type EntryView struct {
	Position         int       `json:"position"`
	ParticipantID    uint      `json:"participant_id"`
	DisplayName      string    `json:"display_name"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	Points           int       `json:"points"`
	Correct          int       `json:"correct"`
	Exact            int       `json:"exact"`
	LastRoundBalance int       `json:"last_round_balance"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LeaderboardResponse is the current leaderboard.
type LeaderboardResponse struct {
	Entries []EntryView `json:"entries"`
	Total   int         `json:"total"`
}

// RecomputeResponse is the freshly computed ranking.
type RecomputeResponse struct {
	Entries        []Ranked `json:"entries"`
	ReferenceRound *int     `json:"reference_round"`
}
