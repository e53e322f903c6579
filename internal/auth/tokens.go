package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shiftease/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues HS256 access tokens and checks them against a Denylist
// of logged-out token ids.
type TokenManager struct {
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	denylist Denylist
}

// NewTokenManager keeps revoked tokens in memory when denylist is nil.
func NewTokenManager(secret string, ttl time.Duration, denylist Denylist) *TokenManager {
	if denylist == nil {
		denylist = NewMemoryDenylist()
	}

	return &TokenManager{
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		denylist: denylist,
	}
}

func (m *TokenManager) Issue(user *models.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, nil
}

// Parse validates the token and returns the caller it belongs to.
func (m *TokenManager) Parse(ctx context.Context, tokenString string) (Identity, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if claims.Subject == "" || !claims.Role.IsValid() {
		return Identity{}, ErrInvalidToken
	}

	revoked, err := m.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to check token denylist: %w", err)
	}
	if revoked {
		return Identity{}, fmt.Errorf("%w: token has been revoked", ErrInvalidToken)
	}

	return Identity{
		ID:        claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke rejects the caller's token from now until it expires.
func (m *TokenManager) Revoke(ctx context.Context, id Identity) error {
	if id.TokenID == "" {
		return nil
	}

	return m.denylist.Revoke(ctx, id.TokenID, id.ExpiresAt)
}
