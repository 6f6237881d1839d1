package model

// CreateTeamRequest represents the request to register a team.
type CreateTeamRequest struct {
	Name     string  `json:"name" binding:"required"`
	Code     string  `json:"code" binding:"required"`
	CrestURL *string `json:"crest_url"`
}

// TeamListResponse wraps a list of teams.
type TeamListResponse struct {
	Teams []Team `json:"teams"`
}
