// Package model provides domain models, status rules and DTOs for round module.
package model

import "time"

// Round numbers of a Série A season.
const (
	MinNumber = 1
	MaxNumber = 38
)

// Status is the derived lifecycle state of a round.
type Status string

// Round statuses.
const (
	StatusFuture  Status = "future"
	StatusCurrent Status = "current"
	StatusClosed  Status = "closed"
)

// Round is a numbered batch of matches with a prediction window.
// Matches the rounds table schema.
type Round struct {
	ID     uint   `gorm:"primaryKey;column:id" json:"id"`
	Number int    `gorm:"column:number;not null;uniqueIndex" json:"number"`
	Name   string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	// StartsAt and EndsAt bound the prediction window.
	StartsAt  time.Time `gorm:"column:starts_at;not null" json:"starts_at"`
	EndsAt    time.Time `gorm:"column:ends_at;not null" json:"ends_at"`
	Active    bool      `gorm:"column:active;not null;uniqueIndex:rounds_single_active_idx,where:active" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"-"`
}

// TableName specifies the table name for GORM.
func (Round) TableName() string {
	return "rounds"
}

// DeriveStatus classifies a round at now. A round is current only while its
// window is open and it carries the active flag; an open but inactive window
// is closed.
func DeriveStatus(start, end time.Time, active bool, now time.Time) Status {
	if now.Before(start) {
		return StatusFuture
	}
	if !now.After(end) && active {
		return StatusCurrent
	}
	return StatusClosed
}

// Status derives the round status at now.
func (r Round) Status(now time.Time) Status {
	return DeriveStatus(r.StartsAt, r.EndsAt, r.Active, now)
}

// AcceptsPredictions reports whether predictions may be created or revised at now.
func (r Round) AcceptsPredictions(now time.Time) bool {
	return r.Status(now) == StatusCurrent
}

// Contains reports whether now falls inside the round window.
func (r Round) Contains(now time.Time) bool {
	return !now.Before(r.StartsAt) && !now.After(r.EndsAt)
}
