package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shiftease/internal/models"
	"shiftease/internal/storage"
	"shiftease/internal/storage/memory"
)

func newTestService() (*Service, *TokenManager) {
	tokens := NewTokenManager("test-secret", time.Hour, nil)
	svc := NewService(memory.New(), tokens)
	svc.bcryptCost = bcrypt.MinCost
	return svc, tokens
}

func TestSignupAndLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tokens := newTestService()

	session, err := svc.Signup(ctx, SignupInput{
		Email:     " Dana@Example.com ",
		Password:  "hunter22",
		FirstName: "Dana",
		LastName:  "Levi",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, models.RoleUser, session.User.Role)
	assert.Equal(t, "dana@example.com", session.User.Email)
	assert.Equal(t, "Dana Levi", session.User.FullName)

	id, err := tokens.Parse(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, id.ID)
	assert.False(t, id.IsAdmin())

	_, err = svc.Signup(ctx, SignupInput{Email: "dana@example.com", Password: "other"})
	require.ErrorIs(t, err, storage.ErrUserExists)

	_, err = svc.Login(ctx, "dana@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost@example.com", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	session, err = svc.Login(ctx, "DANA@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tokens := newTestService()

	session, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)

	id, err := tokens.Parse(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, id))

	_, err = tokens.Parse(ctx, session.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsBadTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tokens := NewTokenManager("test-secret", time.Hour, nil)
	user := &models.User{ID: "u1", Email: "a@example.com", Role: models.RoleAdmin}

	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	id, err := tokens.Parse(ctx, token)
	require.NoError(t, err)
	assert.True(t, id.IsAdmin())

	other := NewTokenManager("another-secret", time.Hour, nil)
	_, err = other.Parse(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("test-secret", time.Hour, nil)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(user)
	require.NoError(t, err)
	_, err = tokens.Parse(ctx, old)
	require.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role:             models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Parse(ctx, none)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{ID: "u1", Role: models.RoleUser})
	id, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", id.ID)
}

func TestMemoryDenylistExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	d := NewMemoryDenylist()
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(ctx, "t1", now.Add(time.Minute)))
	require.NoError(t, d.Revoke(ctx, "stale", now.Add(-time.Minute)))

	revoked, err := d.IsRevoked(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = d.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)

	revoked, err = d.IsRevoked(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "t2", now.Add(time.Minute)))
	d.mu.Lock()
	assert.Len(t, d.revoked, 1)
	d.mu.Unlock()
}

func TestEnsureAccount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.New()

	created, err := EnsureAccount(ctx, store, Account{
		Email:     "Boss@Example.com",
		Password:  "admin-pass",
		FirstName: "Bo",
		Role:      models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, created)

	u, err := store.GetUserByEmail(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, "Bo", u.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin-pass")))

	created, err = EnsureAccount(ctx, store, Account{Email: "boss@example.com", Role: models.RoleUser})
	require.NoError(t, err)
	assert.False(t, created)

	u, err = store.GetUserByEmail(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestEnsureAccountNeedsPasswordForNewUser(t *testing.T) {
	t.Parallel()

	_, err := EnsureAccount(context.Background(), memory.New(), Account{
		Email: "nobody@example.com",
		Role:  models.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestSignupRejectsPasswordOverBcryptLimit(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "long@example.com",
		Password: strings.Repeat("ü", 40),
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
