package model

import "time"

// RegisterRequest represents a sign-up.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// LoginRequest represents a sign-in.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the access token.
type LoginResponse struct {
	Token       string      `json:"token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	Participant Participant `json:"participant"`
}

// UpdateProfileRequest changes the caller's own profile. Nil fields are kept.
// An empty avatar_url clears the avatar.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// SetFlagsRequest changes administrative flags. Nil fields are kept.
type SetFlagsRequest struct {
	Active    *bool `json:"active"`
	Invisible *bool `json:"invisible"`
	Admin     *bool `json:"admin"`
}

// ProfileStats are the scoring figures of one participant.
type ProfileStats struct {
	Predictions      int     `json:"predictions"`
	Correct          int     `json:"correct"`
	Exact            int     `json:"exact"`
	Points           int     `json:"points"`
	LastRoundBalance int     `json:"last_round_balance"`
	Accuracy         float64 `json:"accuracy"`
	Position         *int    `json:"position"`
}

// RecentPick is a scored prediction listed on a profile.
type RecentPick struct {
	MatchID       uint      `json:"match_id"`
	RoundNumber   int       `json:"round_number"`
	HomeTeam      string    `json:"home_team"`
	AwayTeam      string    `json:"away_team"`
	PredictedHome int       `json:"predicted_home"`
	PredictedAway int       `json:"predicted_away"`
	HomeGoals     *int      `json:"home_goals"`
	AwayGoals     *int      `json:"away_goals"`
	PredictedAt   time.Time `json:"predicted_at"`
	Points        int       `gorm:"-" json:"points"`
}

// ProfileResponse is a participant with their statistics and latest scored picks.
type ProfileResponse struct {
	Participant Participant  `json:"participant"`
	Stats       ProfileStats `json:"stats"`
	Recent      []RecentPick `json:"recent"`
}
