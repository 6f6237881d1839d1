// Package handler provides HTTP handlers for match endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	matchModel "github.com/festy23/futamigo/internal/match/model"
	"github.com/festy23/futamigo/internal/match/service"
	roundModel "github.com/festy23/futamigo/internal/round/model"
)

// Handler handles HTTP requests for match endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new match handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateMatch handles POST /matches.
func (h *Handler) CreateMatch(c *gin.Context) {
	var req matchModel.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	view, err := h.service.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "error creating match")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"match": view})
}

// GetMatch handles GET /matches/:id.
func (h *Handler) GetMatch(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	view, err := h.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "error getting match")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListRoundMatches handles GET /rounds/:id/matches.
func (h *Handler) ListRoundMatches(c *gin.Context) {
	roundID, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.service.ListRoundMatches(c.Request.Context(), roundID)
	if err != nil {
		h.writeError(c, err, "error listing matches")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetResult handles PUT /matches/:id/result.
func (h *Handler) SetResult(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	var req matchModel.SetResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.SetResult(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err, "error setting match result")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, matchModel.ErrMatchNotFound):
		httpapi.NotFound(c, "match not found")
	case errors.Is(err, roundModel.ErrRoundNotFound):
		httpapi.NotFound(c, "round not found")
	case errors.Is(err, matchModel.ErrUnknownTeam):
		httpapi.NotFound(c, "team not found")
	case errors.Is(err, matchModel.ErrMatchExists):
		httpapi.Error(c, http.StatusConflict, "MATCH_EXISTS", "match already exists in this round")
	case errors.Is(err, matchModel.ErrSameTeams),
		errors.Is(err, matchModel.ErrInvalidGoals),
		errors.Is(err, matchModel.ErrIncompleteResult):
		httpapi.BadRequest(c, err.Error())
	case errors.Is(err, matchModel.ErrRecomputeFailed):
		h.logger.Errorw(msg, "error", err)
		httpapi.Error(c, http.StatusInternalServerError, "RECOMPUTE_FAILED",
			"result saved but leaderboard recompute failed")
	default:
		h.logger.Errorw(msg, "error", err)
		httpapi.Internal(c)
	}
}
