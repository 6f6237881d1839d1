package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/httpapi"
	teamModel "github.com/festy23/futamigo/internal/team/model"
	"github.com/festy23/futamigo/internal/team/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockService) GetTeam(ctx context.Context, id uint) (*teamModel.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockService) ListTeams(ctx context.Context) (*teamModel.TeamListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.TeamListResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_CreateTeam(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantErr  string
	}{
		{"success", `{"name":"Botafogo","code":"BOT"}`, nil, http.StatusCreated, ""},
		{"missing code", `{"name":"Botafogo"}`, nil, http.StatusBadRequest, httpapi.CodeInvalidRequest},
		{"duplicate", `{"name":"Botafogo","code":"BOT"}`, teamModel.ErrTeamExists, http.StatusConflict, "TEAM_EXISTS"},
		{"invalid code", `{"name":"Botafogo","code":"BOTA"}`, teamModel.ErrInvalidTeamCode, http.StatusBadRequest, httpapi.CodeInvalidRequest},
		{"internal", `{"name":"Botafogo","code":"BOT"}`, errors.New("boom"), http.StatusInternalServerError, httpapi.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockService)
			h := New(mockSvc, zap.NewNop().Sugar())
			router := setupRouter()
			router.POST("/teams", h.CreateTeam)

			if tt.svcErr != nil {
				mockSvc.On("CreateTeam", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			} else {
				mockSvc.On("CreateTeam", mock.Anything, mock.Anything).
					Return(&teamModel.Team{ID: 4, Name: "Botafogo", Code: "BOT"}, nil)
			}

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/teams", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr == "" {
				var resp map[string]teamModel.Team
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "BOT", resp["team"].Code)
				return
			}
			var resp httpapi.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

func TestHandler_GetTeam(t *testing.T) {
	mockSvc := new(mockService)
	h := New(mockSvc, zap.NewNop().Sugar())
	router := setupRouter()
	router.GET("/teams/:id", h.GetTeam)

	mockSvc.On("GetTeam", mock.Anything, uint(1)).Return(&teamModel.Team{ID: 1, Name: "Bahia", Code: "BAH"}, nil)
	mockSvc.On("GetTeam", mock.Anything, uint(2)).Return(nil, teamModel.ErrTeamNotFound)

	cases := map[string]int{
		"/teams/1": http.StatusOK,
		"/teams/2": http.StatusNotFound,
		"/teams/0": http.StatusBadRequest,
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, path)
	}
}

func TestHandler_ListTeams(t *testing.T) {
	mockSvc := new(mockService)
	h := New(mockSvc, zap.NewNop().Sugar())
	router := setupRouter()
	router.GET("/teams", h.ListTeams)
	mockSvc.On("ListTeams", mock.Anything).Return(&teamModel.TeamListResponse{Teams: []teamModel.Team{}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/teams", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"teams":[]}`, w.Body.String())
}
