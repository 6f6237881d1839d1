// Package handler provides HTTP handlers for participant and auth endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	"github.com/festy23/futamigo/internal/middleware"
	"github.com/festy23/futamigo/internal/participant/model"
	"github.com/festy23/futamigo/internal/participant/service"
)

// Handler handles HTTP requests for participant endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new participant handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "error registering participant")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participant": p})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "error logging in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles GET /participants/me.
func (h *Handler) Me(c *gin.Context) {
	id, ok := middleware.ParticipantID(c)
	if !ok {
		httpapi.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}

	p, err := h.service.Me(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "error getting participant")
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMe handles PUT /participants/me.
func (h *Handler) UpdateMe(c *gin.Context) {
	id, ok := middleware.ParticipantID(c)
	if !ok {
		httpapi.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err, "error updating profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Profile handles GET /participants/:id/profile.
func (h *Handler) Profile(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Profile(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "error getting profile")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetFlags handles POST /participants/:id/flags.
func (h *Handler) SetFlags(c *gin.Context) {
	id, ok := httpapi.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.SetFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.SetFlags(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err, "error setting participant flags")
		return
	}
	c.JSON(http.StatusOK, gin.H{"participant": p})
}

func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, model.ErrParticipantNotFound):
		httpapi.NotFound(c, "participant not found")
	case errors.Is(err, model.ErrUsernameTaken):
		httpapi.Error(c, http.StatusConflict, "USERNAME_TAKEN", "username already taken")
	case errors.Is(err, model.ErrInvalidUsername):
		httpapi.BadRequest(c, "username must be 3..64 letters, digits, '.', '_' or '-'")
	case errors.Is(err, model.ErrWeakPassword):
		httpapi.BadRequest(c, "password must be 8..72 characters")
	case errors.Is(err, model.ErrInvalidDisplayName):
		httpapi.BadRequest(c, "display name must be 1..100 characters")
	case errors.Is(err, model.ErrNoChanges):
		httpapi.BadRequest(c, "no fields to update")
	case errors.Is(err, model.ErrInvalidCredentials):
		httpapi.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
	case errors.Is(err, model.ErrParticipantInactive):
		httpapi.Error(c, http.StatusForbidden, "PARTICIPANT_INACTIVE", "participant is inactive")
	default:
		h.logger.Errorw(msg, "error", err)
		httpapi.Internal(c)
	}
}
