// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// and identifier generation.
package utils

import (
	"context"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the authentication gate stores the
// loaded [models.Identity] in the request context.
var IdentityCtxKey = contextKey("identity")

// ClaimsCtxKey is the key under which the authentication gate stores the
// verified session [models.Claims] in the request context.
var ClaimsCtxKey = contextKey("claims")

// GetIdentityFromContext retrieves the authenticated identity from the
// context.
//
// Returns the identity and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}

// GetClaimsFromContext retrieves the verified session claims from the
// context.
func GetClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.Claims)
	return claims, ok
}
