package service

import (
	"context"
	"testing"
	"time"

	"blogdesk/internal/config"
	"blogdesk/internal/microservices/http-api/dto"
	"blogdesk/internal/moderation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthService(st *store) *authService {
	cfg := &config.Config{
		JWTSecret:       testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return NewAuthService(fakeProfiles{st}, cfg, discardLogger()).(*authService)
}

func register(t *testing.T, svc AuthService, email string) *dto.ProfileResponse {
	t.Helper()
	p, err := svc.Register(context.Background(), dto.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "password123",
	})
	require.NoError(t, err)
	return p
}

func TestRegister(t *testing.T) {
	st := newStore()
	svc := newAuthService(st)

	p := register(t, svc, "Ada@Example.com")
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, moderation.RoleUser, p.Role)
	assert.True(t, p.IsActive)
	assert.NotEqual(t, "password123", st.profiles[p.ID].Password)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FirstName: "Ada", LastName: "Again", Email: "ada@example.com", Password: "password123",
	})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	svc := newAuthService(st)
	p := register(t, svc, "ada@example.com")

	resp, err := svc.SignIn(ctx, "ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.NotNil(t, resp.Profile.LastLogin)
	assert.NotNil(t, st.profiles[p.ID].HashedRefreshToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.UserID)
	assert.Equal(t, moderation.RoleUser, claims.Role)

	_, err = svc.ValidateToken(resp.RefreshToken)
	assert.Error(t, err, "refresh tokens are not access tokens")

	_, err = svc.SignIn(ctx, "ada@example.com", "wrong")
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	_, err = svc.SignIn(ctx, "nobody@example.com", "password123")
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	st.profiles[p.ID].IsActive = false
	_, err = svc.SignIn(ctx, "ada@example.com", "password123")
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	svc := newAuthService(st)
	register(t, svc, "ada@example.com")

	first, err := svc.SignIn(ctx, "ada@example.com", "password123")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err), "rotated token is dead")

	_, err = svc.Refresh(ctx, second.AccessToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestSignOut_RevokesRefresh(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	svc := newAuthService(st)
	p := register(t, svc, "ada@example.com")

	resp, err := svc.SignIn(ctx, "ada@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, p.ID))
	assert.Nil(t, st.profiles[p.ID].HashedRefreshToken)

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestValidateToken_Rejects(t *testing.T) {
	st := newStore()
	svc := newAuthService(st)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u", Type: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u", Type: tokenTypeAccess, Role: moderation.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	})
	signed, err = forged.SignedString([]byte("another-secret-another-secret-!!"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestActiveRole(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	svc := newAuthService(st)

	admin := st.addProfile(moderation.RoleAdmin, "admin@example.com")
	role, err := svc.ActiveRole(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, moderation.RoleAdmin, role)

	st.profiles[admin.ID].Role = moderation.RoleUser
	role, err = svc.ActiveRole(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, moderation.RoleUser, role)

	st.profiles[admin.ID].IsActive = false
	_, err = svc.ActiveRole(ctx, admin.ID)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	_, err = svc.ActiveRole(ctx, "missing")
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}
