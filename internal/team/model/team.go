// Package model provides domain models and DTOs for team module.
package model

import "time"

// Team is a club taking part in the championship.
// Matches the teams table schema.
type Team struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(64);not null;uniqueIndex" json:"name"`
	Code      string    `gorm:"column:code;type:varchar(3);not null;uniqueIndex" json:"code"`
	CrestURL  *string   `gorm:"column:crest_url;type:varchar(512)" json:"crest_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}
