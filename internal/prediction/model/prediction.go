// Package model provides domain models and DTOs for prediction module.
package model

import "time"

// Prediction is a participant's guessed score for one match. There is at most
// one per (participant, match); revisions overwrite it.
// Matches the predictions table schema.
type Prediction struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	ParticipantID uint      `gorm:"column:participant_id;not null;uniqueIndex:predictions_participant_match_key" json:"participant_id"`
	MatchID       uint      `gorm:"column:match_id;not null;index;uniqueIndex:predictions_participant_match_key" json:"match_id"`
	HomeGoals     int       `gorm:"column:home_goals;not null" json:"home_goals"`
	AwayGoals     int       `gorm:"column:away_goals;not null" json:"away_goals"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Prediction) TableName() string {
	return "predictions"
}
