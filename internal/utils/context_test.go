package utils

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

func TestGetIdentityFromContext(t *testing.T) {
	identity := models.Identity{ID: "id-1", Role: models.RoleFarmer}
	ctx := context.WithValue(context.Background(), IdentityCtxKey, identity)

	got, ok := GetIdentityFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	_, ok := GetIdentityFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "not an identity")

	_, ok := GetIdentityFromContext(ctx)

	assert.False(t, ok)
}

func TestGetClaimsFromContext(t *testing.T) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "id-1"},
		Purpose:          models.PurposeSession,
	}
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, claims)

	got, ok := GetClaimsFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, claims, got)
}
