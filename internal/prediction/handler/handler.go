// Package handler provides HTTP handlers for prediction endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	"github.com/festy23/futamigo/internal/middleware"
	predictionModel "github.com/festy23/futamigo/internal/prediction/model"
	"github.com/festy23/futamigo/internal/prediction/service"
	roundModel "github.com/festy23/futamigo/internal/round/model"
)

// Handler handles HTTP requests for prediction endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new prediction handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Submit handles POST /rounds/:id/predictions.
func (h *Handler) Submit(c *gin.Context) {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		httpapi.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	roundID, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	var req predictionModel.SubmitPredictionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.SubmitRoundPredictions(c.Request.Context(), participantID, roundID, &req)
	if err != nil {
		h.writeError(c, err, "error submitting predictions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Mine handles GET /rounds/:id/predictions/me.
func (h *Handler) Mine(c *gin.Context) {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		httpapi.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	roundID, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.ListMyRoundPredictions(c.Request.Context(), participantID, roundID)
	if err != nil {
		h.writeError(c, err, "error listing predictions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sheet handles GET /rounds/:id/predictions.
func (h *Handler) Sheet(c *gin.Context) {
	roundID, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.RoundSheet(c.Request.Context(), roundID)
	if err != nil {
		h.writeError(c, err, "error building round sheet")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, roundModel.ErrRoundNotFound):
		httpapi.NotFound(c, "round not found")
	case errors.Is(err, predictionModel.ErrRoundClosed):
		httpapi.Error(c, http.StatusConflict, "ROUND_CLOSED", err.Error())
	case errors.Is(err, predictionModel.ErrRoundStillOpen):
		httpapi.Error(c, http.StatusConflict, "ROUND_OPEN", err.Error())
	case errors.Is(err, predictionModel.ErrInvalidGoals),
		errors.Is(err, predictionModel.ErrMatchNotInRound),
		errors.Is(err, predictionModel.ErrDuplicateMatch),
		errors.Is(err, predictionModel.ErrEmptySubmission):
		httpapi.BadRequest(c, err.Error())
	default:
		h.logger.Errorw(msg, "error", err)
		httpapi.Internal(c)
	}
}
