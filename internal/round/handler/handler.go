// Package handler provides HTTP handlers for round endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	"github.com/festy23/futamigo/internal/round/service"
)

// Handler handles HTTP requests for round endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new round handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateRound handles POST /rounds.
func (h *Handler) CreateRound(c *gin.Context) {
	var req roundModel.CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	rs, err := h.service.CreateRound(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "error creating round")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"round": rs})
}

// ListRounds handles GET /rounds.
func (h *Handler) ListRounds(c *gin.Context) {
	resp, err := h.service.ListRounds(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "error listing rounds")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetRound handles GET /rounds/:id.
func (h *Handler) GetRound(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	rs, err := h.service.GetRound(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "error getting round")
		return
	}
	c.JSON(http.StatusOK, rs)
}

// CurrentRound handles GET /rounds/current.
func (h *Handler) CurrentRound(c *gin.Context) {
	resp, err := h.service.CurrentRound(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "error getting current round")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActivateRound handles POST /rounds/:id/activate.
func (h *Handler) ActivateRound(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	rs, err := h.service.ActivateRound(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "error activating round")
		return
	}
	c.JSON(http.StatusOK, gin.H{"round": rs})
}

// DeactivateRound handles POST /rounds/:id/deactivate.
func (h *Handler) DeactivateRound(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	rs, err := h.service.DeactivateRound(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "error deactivating round")
		return
	}
	c.JSON(http.StatusOK, gin.H{"round": rs})
}

// DiagnoseRounds handles GET /rounds/diagnose.
func (h *Handler) DiagnoseRounds(c *gin.Context) {
	d, err := h.service.DiagnoseRounds(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "error diagnosing rounds")
		return
	}
	c.JSON(http.StatusOK, d)
}

// RepairActiveRounds handles POST /rounds/repair?dry_run=true.
func (h *Handler) RepairActiveRounds(c *gin.Context) {
	dryRun := false
	if raw := c.Query("dry_run"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httpapi.BadRequest(c, "dry_run must be a boolean")
			return
		}
		dryRun = v
	}

	res, err := h.service.RepairActiveRounds(c.Request.Context(), dryRun)
	if err != nil {
		h.writeError(c, err, "error repairing rounds")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, roundModel.ErrRoundNotFound):
		httpapi.NotFound(c, "round not found")
	case errors.Is(err, roundModel.ErrRoundExists):
		httpapi.Error(c, http.StatusConflict, "ROUND_EXISTS", "round number already exists")
	case errors.Is(err, roundModel.ErrInvalidNumber):
		httpapi.BadRequest(c, "number must be between 1 and 38")
	case errors.Is(err, roundModel.ErrInvalidWindow):
		httpapi.BadRequest(c, "starts_at must be before ends_at")
	default:
		h.logger.Errorw(msg, "error", err)
		httpapi.Internal(c)
	}
}
