package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/networth/pkg/config"
	"github.com/amirasaad/networth/pkg/domain"
	"github.com/amirasaad/networth/pkg/domain/user"
	"github.com/amirasaad/networth/pkg/dto"
	"github.com/amirasaad/networth/pkg/service/auth"
	usersvc "github.com/amirasaad/networth/pkg/service/user"
	"github.com/amirasaad/networth/pkg/testutils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, cfg *config.Jwt) (*auth.Service, *usersvc.Service) {
	t.Helper()
	uow, _ := testutils.NewTestUoW(t)
	return auth.New(uow, cfg, testutils.Logger()), usersvc.New(uow, nil, 0, testutils.Logger())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, users := setup(t, &config.Jwt{Secret: "test-secret", ExpiryMinutes: 30})
	alice, err := users.Register(ctx, "alice", "alice@example.com", "Secret123", "USD")
	require.NoError(t, err)

	byName, err := svc.Login(ctx, "alice", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)

	byEmail, err := svc.Login(ctx, "alice@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = svc.Login(ctx, "alice", "Wrong123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody", "Secret123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody@example.com", "Secret123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, users := setup(t, &config.Jwt{Secret: "test-secret", Algorithm: "HS512", ExpiryMinutes: 30})
	alice, err := users.Register(ctx, "alice", "alice@example.com", "Secret123", "USD")
	require.NoError(t, err)

	raw, err := svc.GenerateToken(alice)
	require.NoError(t, err)

	token, err := svc.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "HS512", token.Method.Alg())
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "USER", claims["role"])

	id, err := svc.GetCurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id)

	current, err := svc.GetCurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", current.Email)

	require.NoError(t, users.Delete(ctx, alice.ID))
	_, err = svc.GetCurrentUser(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseTokenRejects(t *testing.T) {
	cfg := &config.Jwt{Secret: "test-secret", ExpiryMinutes: 30}
	svc, _ := setup(t, cfg)
	sign := func(method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
		raw, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return raw
	}
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{"sub": "alice", "user_id": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}
	}
	expired := valid()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noExpiry := valid()
	delete(noExpiry, "exp")

	tests := map[string]string{
		"expired":        sign(jwt.SigningMethodHS256, cfg.Secret, expired),
		"without expiry": sign(jwt.SigningMethodHS256, cfg.Secret, noExpiry),
		"wrong secret":   sign(jwt.SigningMethodHS256, "other", valid()),
		"wrong method":   sign(jwt.SigningMethodHS384, cfg.Secret, valid()),
		"garbage":        "not.a.token",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(raw)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestGetCurrentUserIDRejectsBadClaims(t *testing.T) {
	svc, _ := setup(t, &config.Jwt{Secret: "test-secret", ExpiryMinutes: 30})

	_, err := svc.GetCurrentUserID(nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.GetCurrentUserID(&jwt.Token{Claims: jwt.MapClaims{"user_id": "nope"}})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.GetCurrentUserID(&jwt.Token{Claims: jwt.MapClaims{}})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSigningMethod(t *testing.T) {
	svc, _ := setup(t, &config.Jwt{Secret: "test-secret", Algorithm: "RS256"})
	_, err := svc.SigningMethod()
	assert.ErrorIs(t, err, auth.ErrUnsupportedAlgorithm)
	_, err = svc.GenerateToken(&dto.UserRead{ID: uuid.New(), Username: "alice"})
	assert.ErrorIs(t, err, auth.ErrUnsupportedAlgorithm)
}

func TestRequireRole(t *testing.T) {
	admin := &dto.UserRead{Role: string(user.RoleAdmin)}
	member := &dto.UserRead{Role: string(user.RoleUser)}

	assert.NoError(t, auth.RequireRole(admin, user.RoleAdmin))
	assert.NoError(t, auth.RequireRole(admin, user.RoleUser))
	assert.NoError(t, auth.RequireRole(member, user.RoleUser))
	assert.ErrorIs(t, auth.RequireRole(member, user.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, auth.RequireRole(nil, user.RoleUser), domain.ErrUnauthorized)
}
