// Package model provides data transfer objects for statistics module.
package model

// PoolStatistics holds pool-wide totals.
type PoolStatistics struct {
	ActiveParticipants int `json:"active_participants"`
	Rounds             int `json:"rounds"`
	FinalizedMatches   int `json:"finalized_matches"`
	Predictions        int `json:"predictions"`
	ExactHits          int `json:"exact_hits"`
	OutcomeHits        int `json:"outcome_hits"`
	// HitRate is the share of scored predictions that earned points, in percent.
	HitRate float64 `json:"hit_rate"`
}

// PoolStatisticsResponse represents response for pool statistics.
type PoolStatisticsResponse struct {
	Statistics PoolStatistics `json:"statistics"`
}

// RoundStatistics represents totals for one round.
type RoundStatistics struct {
	RoundID          uint   `json:"round_id"`
	Number           int    `json:"number"`
	Name             string `json:"name"`
	Matches          int    `json:"matches"`
	FinalizedMatches int    `json:"finalized_matches"`
	Predictions      int    `json:"predictions"`
	Participants     int    `json:"participants"`
}

// RoundsStatisticsResponse represents response for per-round statistics.
type RoundsStatisticsResponse struct {
	Rounds []RoundStatistics `json:"rounds"`
	Total  int               `json:"total"`
}

// Pick is a prediction on a finalized match next to the final score.
type Pick struct {
	PredictedHome int
	PredictedAway int
	HomeGoals     int
	AwayGoals     int
}

// Totals are the counters read straight from the database.
type Totals struct {
	ActiveParticipants int64 `gorm:"column:active_participants"`
	Rounds             int64 `gorm:"column:rounds"`
	FinalizedMatches   int64 `gorm:"column:finalized_matches"`
	Predictions        int64 `gorm:"column:predictions"`
}
