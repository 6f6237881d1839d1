// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	teamModel "github.com/festy23/futamigo/internal/team/model"
	"github.com/festy23/futamigo/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /teams.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamExists):
			httpapi.Error(c, http.StatusConflict, "TEAM_EXISTS", "team name or code already exists")
		case errors.Is(err, teamModel.ErrInvalidTeamName):
			httpapi.BadRequest(c, "name must be 1..64 characters")
		case errors.Is(err, teamModel.ErrInvalidTeamCode):
			httpapi.BadRequest(c, "code must be 1..3 characters")
		default:
			h.logger.Errorw("error creating team", "error", err)
			httpapi.Internal(c)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"team": team})
}

// GetTeam handles GET /teams/:id.
func (h *Handler) GetTeam(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}

	team, err := h.service.GetTeam(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			httpapi.NotFound(c, "team not found")
			return
		}
		h.logger.Errorw("error getting team", "team_id", id, "error", err)
		httpapi.Internal(c)
		return
	}

	c.JSON(http.StatusOK, team)
}

// ListTeams handles GET /teams.
func (h *Handler) ListTeams(c *gin.Context) {
	resp, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error listing teams", "error", err)
		httpapi.Internal(c)
		return
	}
	c.JSON(http.StatusOK, resp)
}
