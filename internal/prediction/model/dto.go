package model

import (
	"time"

	roundModel "github.com/festy23/futamigo/internal/round/model"
)

// PredictionItem is one guessed score in a submission.
type PredictionItem struct {
	MatchID   uint `json:"match_id" binding:"required"`
	HomeGoals *int `json:"home_goals" binding:"required"`
	AwayGoals *int `json:"away_goals" binding:"required"`
}

// SubmitPredictionsRequest carries the predictions for one round.
type SubmitPredictionsRequest struct {
	Predictions []PredictionItem `json:"predictions" binding:"required,dive"`
}

// PredictionView is a prediction next to its match and the points it earned.
type PredictionView struct {
	MatchID       uint      `json:"match_id"`
	HomeTeamCode  string    `json:"home_team_code"`
	AwayTeamCode  string    `json:"away_team_code"`
	KickoffAt     time.Time `json:"kickoff_at"`
	PredictedHome int       `json:"predicted_home"`
	PredictedAway int       `json:"predicted_away"`
	HomeGoals     *int      `json:"home_goals"`
	AwayGoals     *int      `json:"away_goals"`
	Finalized     bool      `json:"finalized"`
	Points        int       `json:"points"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoundPredictionsResponse is the caller's predictions for a round.
type RoundPredictionsResponse struct {
	Round       roundModel.RoundStatus `json:"round"`
	Predictions []PredictionView       `json:"predictions"`
	Points      int                    `json:"points"`
}

// SubmitPredictionsResponse reports how many predictions were stored.
type SubmitPredictionsResponse struct {
	RoundID uint `json:"round_id"`
	Saved   int  `json:"saved"`
}

// SheetRow is one participant's line on the round sheet.
type SheetRow struct {
	ParticipantID uint             `json:"participant_id"`
	DisplayName   string           `json:"display_name"`
	Predictions   []PredictionView `json:"predictions"`
	Points        int              `json:"points"`
}

// SheetResponse lists every active participant's predictions for a closed round.
type SheetResponse struct {
	Round        roundModel.RoundStatus `json:"round"`
	Participants []SheetRow             `json:"participants"`
}

// ParticipantPrediction is a prediction view tagged with its author.
type ParticipantPrediction struct {
	ParticipantID uint
	PredictionView
}
