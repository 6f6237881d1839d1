package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festy23/futamigo/internal/auth"
	"github.com/festy23/futamigo/internal/httpapi"
)

const claimsKey = "auth_claims"

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// ErrAccountNotFound is returned by an AccountLookup for an unknown participant.
var ErrAccountNotFound = errors.New("account not found")

// Account is the stored state of the participant behind a token.
type Account struct {
	Active bool
	Admin  bool
}

// AccountLookup reads the current flags of a participant.
type AccountLookup interface {
	Account(ctx context.Context, participantID uint) (Account, error)
}

// Authenticator guards routes with bearer tokens.
type Authenticator struct {
	tokens   TokenParser
	accounts AccountLookup
}

// AuthOption configures an Authenticator.
type AuthOption func(*Authenticator)

// WithAccounts makes every guarded request re-read the participant's flags,
// so deactivation and admin revocation apply before the token expires.
func WithAccounts(accounts AccountLookup) AuthOption {
	return func(a *Authenticator) {
		a.accounts = accounts
	}
}

// NewAuthenticator creates an Authenticator. Without WithAccounts the token
// claims are trusted until expiry.
func NewAuthenticator(tokens TokenParser, opts ...AuthOption) *Authenticator {
	a := &Authenticator{tokens: tokens}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RequireUser rejects requests without a valid bearer token.
func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.authenticate(c) {
			c.Next()
		}
	}
}

// RequireAdmin rejects requests from participants without the admin flag.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticate(c) {
			return
		}
		if claims := Claims(c); claims == nil || !claims.Admin {
			abortWithError(c, http.StatusForbidden, CodeForbidden, "admin privileges required")
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return false
	}

	claims, err := a.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, auth.ErrExpiredToken) {
			msg = "token expired"
		}
		abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, msg)
		return false
	}

	if a.accounts != nil {
		acc, err := a.accounts.Account(c.Request.Context(), claims.ParticipantID)
		switch {
		case errors.Is(err, ErrAccountNotFound):
			abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "unknown participant")
			return false
		case err != nil:
			_ = c.Error(err)
			abortWithError(c, http.StatusInternalServerError, httpapi.CodeInternal, "internal server error")
			return false
		case !acc.Active:
			abortWithError(c, http.StatusForbidden, CodeForbidden, "participant is inactive")
			return false
		}
		live := *claims
		live.Admin = acc.Admin
		claims = &live
	}

	c.Set(claimsKey, claims)
	return true
}

// Claims returns the claims of an authenticated request, or nil.
func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// ParticipantID returns the authenticated participant ID.
func ParticipantID(c *gin.Context) (uint, bool) {
	claims := Claims(c)
	if claims == nil {
		return 0, false
	}
	return claims.ParticipantID, true
}
