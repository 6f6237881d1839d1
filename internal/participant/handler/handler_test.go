package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/auth"
	"github.com/festy23/futamigo/internal/httpapi"
	"github.com/festy23/futamigo/internal/middleware"
	"github.com/festy23/futamigo/internal/participant/model"
	"github.com/festy23/futamigo/internal/participant/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Participant, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

func (m *mockService) Me(ctx context.Context, id uint) (*model.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockService) UpdateProfile(ctx context.Context, id uint, req *model.UpdateProfileRequest) (*model.Participant, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockService) SetFlags(ctx context.Context, id uint, req *model.SetFlagsRequest) (*model.Participant, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *mockService) Profile(ctx context.Context, id uint) (*model.ProfileResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

// staticTokens accepts "user" for participant 7 and "admin" for participant 1.
type staticTokens struct{}

func (staticTokens) Parse(raw string) (*auth.Claims, error) {
	switch raw {
	case "user":
		return &auth.Claims{ParticipantID: 7}, nil
	case "admin":
		return &auth.Claims{ParticipantID: 1, Admin: true}, nil
	}
	return nil, auth.ErrInvalidToken
}

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	guard := middleware.NewAuthenticator(staticTokens{})
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/participants/me", guard.RequireUser(), h.Me)
	r.PUT("/participants/me", guard.RequireUser(), h.UpdateMe)
	r.GET("/participants/:id/profile", h.Profile)
	r.POST("/participants/:id/flags", guard.RequireAdmin(), h.SetFlags)
	return r
}

func do(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHandler_Register(t *testing.T) {
	body := `{"username":"torcedor","password":"segredo123","display_name":"Torcedor"}`

	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantErr  string
	}{
		{"success", body, nil, http.StatusCreated, ""},
		{"missing password", `{"username":"torcedor","display_name":"T"}`, nil, http.StatusBadRequest, httpapi.CodeInvalidRequest},
		{"taken", body, model.ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{"weak password", body, model.ErrWeakPassword, http.StatusBadRequest, httpapi.CodeInvalidRequest},
		{"internal", body, errors.New("boom"), http.StatusInternalServerError, httpapi.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockService)
			router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
			if tt.svcErr != nil {
				mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			} else {
				mockSvc.On("Register", mock.Anything, mock.Anything).
					Return(&model.Participant{ID: 3, Username: "torcedor", PasswordHash: "secret-hash", Active: true}, nil)
			}

			w := do(router, http.MethodPost, "/auth/register", "", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorCode(t, w))
				return
			}
			assert.NotContains(t, w.Body.String(), "secret-hash")
		})
	}
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		wantCode int
		wantErr  string
	}{
		{"success", nil, http.StatusOK, ""},
		{"bad credentials", model.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"inactive", model.ErrParticipantInactive, http.StatusForbidden, "PARTICIPANT_INACTIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockService)
			router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
			if tt.svcErr != nil {
				mockSvc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			} else {
				mockSvc.On("Login", mock.Anything, &model.LoginRequest{Username: "ana", Password: "segredo123"}).
					Return(&model.LoginResponse{Token: "jwt", ExpiresAt: time.Now().Add(time.Hour)}, nil)
			}

			w := do(router, http.MethodPost, "/auth/login", "", `{"username":"ana","password":"segredo123"}`)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorCode(t, w))
				return
			}
			var resp model.LoginResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "jwt", resp.Token)
		})
	}
}

func TestHandler_Me(t *testing.T) {
	mockSvc := new(mockService)
	router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
	mockSvc.On("Me", mock.Anything, uint(7)).Return(&model.Participant{ID: 7, Username: "ana"}, nil)

	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/participants/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/participants/me", "forged", "").Code)

	w := do(router, http.MethodGet, "/participants/me", "user", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var p model.Participant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, uint(7), p.ID)
}

func TestHandler_UpdateMe(t *testing.T) {
	mockSvc := new(mockService)
	router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
	mockSvc.On("UpdateProfile", mock.Anything, uint(7), mock.MatchedBy(func(req *model.UpdateProfileRequest) bool {
		return req.DisplayName != nil && *req.DisplayName == "Ana B"
	})).Return(&model.Participant{ID: 7, DisplayName: "Ana B"}, nil)
	mockSvc.On("UpdateProfile", mock.Anything, uint(7), &model.UpdateProfileRequest{}).Return(nil, model.ErrNoChanges)

	assert.Equal(t, http.StatusOK, do(router, http.MethodPut, "/participants/me", "user", `{"display_name":"Ana B"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPut, "/participants/me", "user", `{}`).Code)
}

func TestHandler_Profile(t *testing.T) {
	mockSvc := new(mockService)
	router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
	pos := 3
	mockSvc.On("Profile", mock.Anything, uint(4)).Return(&model.ProfileResponse{
		Participant: model.Participant{ID: 4},
		Stats:       model.ProfileStats{Predictions: 10, Correct: 5, Accuracy: 50, Position: &pos},
	}, nil)
	mockSvc.On("Profile", mock.Anything, uint(5)).Return(nil, model.ErrParticipantNotFound)

	w := do(router, http.MethodGet, "/participants/4/profile", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50.0, resp.Stats.Accuracy)
	assert.Equal(t, 3, *resp.Stats.Position)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/participants/5/profile", "", "").Code)
}

func TestHandler_SetFlags(t *testing.T) {
	mockSvc := new(mockService)
	router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
	mockSvc.On("SetFlags", mock.Anything, uint(9), mock.Anything).Return(&model.Participant{ID: 9, Invisible: true}, nil)

	w := do(router, http.MethodPost, "/participants/9/flags", "user", `{"invisible":true}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "SetFlags", mock.Anything, mock.Anything, mock.Anything)

	w = do(router, http.MethodPost, "/participants/9/flags", "admin", `{"invisible":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]model.Participant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["participant"].Invisible)
}
