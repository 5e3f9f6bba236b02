package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "lojamae-test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Name:   "Ana Vendedora",
		Email:  "ana@lojamae.com.br",
		Role:   identity.RoleVendedor,
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "Ana Vendedora", claims.Name)
	assert.Equal(t, "VENDEDOR", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestJWTService_ResolveSession(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Name:   "Carlos Admin",
		Email:  "carlos@lojamae.com.br",
		Role:   identity.RoleAdmin,
	})
	require.NoError(t, err)

	session := svc.ResolveSession(pair.AccessToken)
	assert.True(t, session.Authenticated)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, identity.RoleAdmin, session.Role)
	assert.True(t, session.IsAdmin())
}

func TestJWTService_ResolveSession_TamperedSignature(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Name:   "X",
		Email:  "x@lojamae.com.br",
		Role:   identity.RoleVendedor,
	})
	require.NoError(t, err)

	// flip the last signature byte
	tampered := []byte(pair.AccessToken)
	tampered[len(tampered)-1] ^= 0x01

	session := svc.ResolveSession(string(tampered))
	assert.False(t, session.Authenticated)
	assert.Equal(t, identity.Anonymous(), session)
}

func TestJWTService_ResolveSession_InvalidInputs(t *testing.T) {
	svc := newTestJWTService()

	assert.Equal(t, identity.Anonymous(), svc.ResolveSession(""))
	assert.Equal(t, identity.Anonymous(), svc.ResolveSession("not-a-jwt"))

	// token signed with a different secret
	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-also-32-characters-xx",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "other",
	})
	pair, err := other.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(), Name: "Y", Email: "y@y.com", Role: identity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, identity.Anonymous(), svc.ResolveSession(pair.AccessToken))
}

func TestJWTService_ResolveSession_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters-long",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "lojamae-test",
	})
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(), Name: "Z", Email: "z@z.com", Role: identity.RoleVendedor,
	})
	require.NoError(t, err)

	assert.Equal(t, identity.Anonymous(), svc.ResolveSession(pair.AccessToken))

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(), Name: "W", Email: "w@w.com", Role: identity.RoleVendedor,
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	assert.Equal(t, identity.Anonymous(), svc.ResolveSession(pair.RefreshToken))
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, blacklisted)

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))
	blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	// already-expired entry reads as not blacklisted
	require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))
	blacklisted, err = bl.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
