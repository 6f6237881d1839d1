// Package model provides domain models and DTOs for match module.
package model

import (
	"time"

	"github.com/festy23/futamigo/internal/scoring"
)

// Match is a fixture of a round. Goals stay nil until known.
// Matches the matches table schema.
type Match struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	RoundID    uint      `gorm:"column:round_id;not null;index;uniqueIndex:matches_round_teams_key" json:"round_id"`
	HomeTeamID uint      `gorm:"column:home_team_id;not null;uniqueIndex:matches_round_teams_key" json:"home_team_id"`
	AwayTeamID uint      `gorm:"column:away_team_id;not null;uniqueIndex:matches_round_teams_key" json:"away_team_id"`
	KickoffAt  time.Time `gorm:"column:kickoff_at;not null" json:"kickoff_at"`
	HomeGoals  *int      `gorm:"column:home_goals" json:"home_goals"`
	AwayGoals  *int      `gorm:"column:away_goals" json:"away_goals"`
	Finalized  bool      `gorm:"column:finalized;not null" json:"finalized"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"-"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Match) TableName() string {
	return "matches"
}

// Result returns the match result in scoring terms.
func (m Match) Result() scoring.Result {
	return scoring.Result{HomeGoals: m.HomeGoals, AwayGoals: m.AwayGoals, Finalized: m.Finalized}
}

// SameResult reports whether the stored result already equals the given one.
func (m Match) SameResult(home, away *int, finalized bool) bool {
	return m.Finalized == finalized && equalGoals(m.HomeGoals, home) && equalGoals(m.AwayGoals, away)
}

func equalGoals(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
