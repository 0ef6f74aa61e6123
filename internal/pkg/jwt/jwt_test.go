package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("owner-1", "owner@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	uid, err := OwnerFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", uid)
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "soon")

	_, _, err := svc.GenerateAccessToken("owner-1", "owner@example.com")
	assert.Error(t, err)
}

func TestOwnerFromContext_MissingClaim(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")
	token, _, err := svc.JWTAuth().Encode(map[string]interface{}{"email": "x@example.com"})
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	_, err = OwnerFromContext(ctx)
	assert.ErrorIs(t, err, ErrOwnerClaimMissing)
}

func TestOwnerFromContext_NoToken(t *testing.T) {
	_, err := OwnerFromContext(context.Background())
	assert.Error(t, err)
}
