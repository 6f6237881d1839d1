package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/festy23/futamigo/internal/auth"
)

type mockParser struct {
	mock.Mock
}

func (m *mockParser) Parse(raw string) (*auth.Claims, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

var _ TokenParser = (*mockParser)(nil)

type accountTable map[uint]Account

func (t accountTable) Account(_ context.Context, id uint) (Account, error) {
	if id == 99 {
		return Account{}, errors.New("connection reset")
	}
	acc, ok := t[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acc, nil
}

func setupAuthRouter(parser TokenParser, opts ...AuthOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	a := NewAuthenticator(parser, opts...)
	r := gin.New()
	r.GET("/me", a.RequireUser(), func(c *gin.Context) {
		id, _ := ParticipantID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	r.POST("/admin", a.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doAuth(r *gin.Engine, method, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		parser := new(mockParser)
		parser.On("Parse", "good").Return(&auth.Claims{ParticipantID: 7}, nil)
		r := setupAuthRouter(parser)

		w := doAuth(r, http.MethodGet, "/me", "Bearer good")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7}`, w.Body.String())
		parser.AssertExpectations(t)
	})

	t.Run("missing header", func(t *testing.T) {
		r := setupAuthRouter(new(mockParser))

		w := doAuth(r, http.MethodGet, "/me", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r := setupAuthRouter(new(mockParser))

		w := doAuth(r, http.MethodGet, "/me", "Basic abc")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		parser := new(mockParser)
		parser.On("Parse", "old").Return(nil, auth.ErrExpiredToken)
		r := setupAuthRouter(parser)

		w := doAuth(r, http.MethodGet, "/me", "bearer old")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token expired")
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin allowed", func(t *testing.T) {
		parser := new(mockParser)
		parser.On("Parse", "adm").Return(&auth.Claims{ParticipantID: 1, Admin: true}, nil)

		w := doAuth(setupAuthRouter(parser), http.MethodPost, "/admin", "Bearer adm")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("participant forbidden", func(t *testing.T) {
		parser := new(mockParser)
		parser.On("Parse", "usr").Return(&auth.Claims{ParticipantID: 2}, nil)

		w := doAuth(setupAuthRouter(parser), http.MethodPost, "/admin", "Bearer usr")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("anonymous unauthorized", func(t *testing.T) {
		w := doAuth(setupAuthRouter(new(mockParser)), http.MethodPost, "/admin", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestParticipantID_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := ParticipantID(c)
	assert.False(t, ok)
	assert.Nil(t, Claims(c))
}

func TestAuthenticator_WithAccounts(t *testing.T) {
	accounts := accountTable{
		1: {Active: true, Admin: true},
		2: {Active: true},
		3: {Active: false},
	}
	claims := map[string]*auth.Claims{
		"current-admin": {ParticipantID: 1, Admin: true},
		"demoted-admin": {ParticipantID: 2, Admin: true},
		"promoted-user": {ParticipantID: 1},
		"deactivated":   {ParticipantID: 3},
		"deleted":       {ParticipantID: 4},
		"store-down":    {ParticipantID: 99},
	}

	tests := []struct {
		name     string
		token    string
		method   string
		path     string
		wantCode int
	}{
		{"admin still admin", "current-admin", http.MethodPost, "/admin", http.StatusNoContent},
		{"revoked admin loses admin routes", "demoted-admin", http.MethodPost, "/admin", http.StatusForbidden},
		{"revoked admin keeps user routes", "demoted-admin", http.MethodGet, "/me", http.StatusOK},
		{"granted admin before new token", "promoted-user", http.MethodPost, "/admin", http.StatusNoContent},
		{"deactivated participant", "deactivated", http.MethodGet, "/me", http.StatusForbidden},
		{"unknown participant", "deleted", http.MethodGet, "/me", http.StatusUnauthorized},
		{"lookup failure", "store-down", http.MethodGet, "/me", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(mockParser)
			parser.On("Parse", tt.token).Return(claims[tt.token], nil)
			r := setupAuthRouter(parser, WithAccounts(accounts))

			w := doAuth(r, tt.method, tt.path, "Bearer "+tt.token)

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}
}
