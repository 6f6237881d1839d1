// Package model provides domain models and DTOs for participant module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Participant is a pool member with a login identity.
// Matches the participants table schema.
type Participant struct {
	ID           uint    `gorm:"primaryKey;column:id" json:"id"`
	Username     string  `gorm:"column:username;type:varchar(64);not null;uniqueIndex" json:"username"`
	PasswordHash string  `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	DisplayName  string  `gorm:"column:display_name;type:varchar(100);not null" json:"display_name"`
	AvatarURL    *string `gorm:"column:avatar_url;type:varchar(512)" json:"avatar_url,omitempty"`
	// Active participants may log in and are ranked.
	Active bool `gorm:"column:active;not null" json:"active"`
	// Invisible participants play normally but never appear on the leaderboard.
	Invisible bool      `gorm:"column:invisible;not null" json:"invisible"`
	Admin     bool      `gorm:"column:admin;not null" json:"admin"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Participant) TableName() string {
	return "participants"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (p *Participant) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}

// Ranked reports whether the participant belongs on the leaderboard.
func (p Participant) Ranked() bool {
	return p.Active && !p.Invisible
}
