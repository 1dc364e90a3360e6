package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/token"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/utils"
)

// auth is the authentication gate for every protected route.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// as a session token via [service.AccountService.VerifySession], and stores
// the loaded identity and the verified claims in the request context under
// [utils.IdentityCtxKey] and [utils.ClaimsCtxKey] before delegating to the
// next handler.
//
// Every failure mode answers HTTP 401 Unauthorized: a missing or malformed
// header, an expired or tampered token, a token issued for a non-session
// purpose, and a token whose subject no longer exists in the store. The
// rejection reasons are logged via [logger.FromRequest], never leaked in
// detail to the caller.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, claims, err := h.services.Account.VerifySession(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrTokenExpired):
				log.Warn().Msg("session token expired")
				http.Error(w, token.ErrTokenExpired.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("session verification failed")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		// Store the authenticated identity and claims in the context so
		// that downstream handlers can use them without re-verifying.
		ctx = context.WithValue(ctx, utils.IdentityCtxKey, identity)
		ctx = context.WithValue(ctx, utils.ClaimsCtxKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] when the header contains fewer than
//     two space-separated parts (the token is missing entirely).
//   - [ErrEmptyToken] when the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
