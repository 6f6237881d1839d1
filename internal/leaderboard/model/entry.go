// Package model provides the leaderboard entry, the pure ranking projection
// and DTOs for leaderboard module.
package model

import "time"

// Entry is one persisted leaderboard line. The whole set is replaced on every
// recomputation.
// Matches the leaderboard_entries table schema.
type Entry struct {
	ParticipantID    uint      `gorm:"primaryKey;autoIncrement:false;column:participant_id" json:"participant_id"`
	Position         int       `gorm:"column:position;not null;uniqueIndex" json:"position"`
	Points           int       `gorm:"column:points;not null" json:"points"`
	Correct          int       `gorm:"column:correct;not null" json:"correct"`
	Exact            int       `gorm:"column:exact;not null" json:"exact"`
	LastRoundBalance int       `gorm:"column:last_round_balance;not null" json:"last_round_balance"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Entry) TableName() string {
	return "leaderboard_entries"
}
