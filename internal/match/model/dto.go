package model

import "time"

// CreateMatchRequest represents the request to schedule a match.
type CreateMatchRequest struct {
	RoundID    uint      `json:"round_id" binding:"required"`
	HomeTeamID uint      `json:"home_team_id" binding:"required"`
	AwayTeamID uint      `json:"away_team_id" binding:"required"`
	KickoffAt  time.Time `json:"kickoff_at" binding:"required"`
}

// SetResultRequest represents a score update. Finalized results need both goal counts.
type SetResultRequest struct {
	HomeGoals *int `json:"home_goals"`
	AwayGoals *int `json:"away_goals"`
	Finalized bool `json:"finalized"`
}

// MatchView is a match joined with its round and teams.
type MatchView struct {
	ID           uint      `json:"id"`
	RoundID      uint      `json:"round_id"`
	RoundNumber  int       `json:"round_number"`
	HomeTeamID   uint      `json:"home_team_id"`
	HomeTeamName string    `json:"home_team_name"`
	HomeTeamCode string    `json:"home_team_code"`
	AwayTeamID   uint      `json:"away_team_id"`
	AwayTeamName string    `json:"away_team_name"`
	AwayTeamCode string    `json:"away_team_code"`
	KickoffAt    time.Time `json:"kickoff_at"`
	HomeGoals    *int      `json:"home_goals"`
	AwayGoals    *int      `json:"away_goals"`
	Finalized    bool      `json:"finalized"`
}

// MatchListResponse wraps the matches of a round.
type MatchListResponse struct {
	RoundID uint        `json:"round_id"`
	Matches []MatchView `json:"matches"`
}

// SetResultResponse reports the stored match and whether anything changed.
type SetResultResponse struct {
	Match   MatchView `json:"match"`
	Changed bool      `json:"changed"`
	// Ranked is the number of leaderboard entries after the recompute, nil
	// when nothing changed.
	Ranked *int `json:"ranked,omitempty"`
}
