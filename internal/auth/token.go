// Package auth issues and verifies participant access tokens and hashes
// passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appConfig "github.com/festy23/futamigo/internal/config"
)

var (
	// ErrInvalidToken indicates a malformed, tampered or foreign token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims identify the participant behind a request.
type Claims struct {
	ParticipantID uint
	Admin         bool
	ExpiresAt     time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Admin bool `json:"adm"`
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer from auth configuration.
func NewIssuer(cfg appConfig.AuthConfig) *Issuer {
	return &Issuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// Issue returns a signed token for the participant and its expiry.
func (i *Issuer) Issue(participantID uint, admin bool) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(i.ttl)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   strconv.FormatUint(uint64(participantID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Admin: admin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies the token and returns its claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrInvalidToken
	}

	return &Claims{
		ParticipantID: uint(id),
		Admin:         claims.Admin,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}
