// Package token implements issuance and verification of the signed,
// expiring bearer tokens used across the platform: session tokens plus the
// email-verification and password-reset purpose tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/segmentio/ksuid"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// tokenService is the private implementation of [Service]. It signs with
// HMAC-SHA256 under a single server-held secret; token kinds are kept apart
// by the purpose claim, not by separate keys.
type tokenService struct {
	// signKey is the HMAC secret. Read-only after construction.
	signKey []byte

	// issuer is the "iss" claim embedded in every issued token. Tokens
	// whose issuer does not match are rejected during parsing.
	issuer string

	// TTL per token kind. Session tokens always expire; an unexpiring
	// session token is a configuration error, not a supported mode.
	sessionTTL time.Duration
	verifyTTL  time.Duration
	resetTTL   time.Duration

	logger *logger.Logger
}

// NewService constructs a [Service] from the application configuration.
//
// A missing signing secret is a startup integrity fault: there is no
// fallback value, silent or otherwise, so construction fails instead.
func NewService(cfg config.App, log *logger.Logger) (Service, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrMissingSignKey
	}

	svc := &tokenService{
		signKey:    []byte(cfg.TokenSignKey),
		issuer:     cfg.TokenIssuer,
		sessionTTL: cfg.SessionTokenTTL,
		verifyTTL:  cfg.VerifyTokenTTL,
		resetTTL:   cfg.ResetTokenTTL,
		logger:     log,
	}

	if svc.sessionTTL <= 0 {
		svc.sessionTTL = config.DefaultSessionTokenTTL
	}
	if svc.verifyTTL <= 0 {
		svc.verifyTTL = config.DefaultVerifyTokenTTL
	}
	if svc.resetTTL <= 0 {
		svc.resetTTL = config.DefaultResetTokenTTL
	}

	return svc, nil
}

// IssueSession implements [Service].
func (s *tokenService) IssueSession(identity models.Identity) (string, error) {
	now := time.Now()
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.ID,
			ID:        ksuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
		Purpose:   models.PurposeSession,
		Role:      identity.Role,
		PublicKey: identity.PublicKey,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return signed, nil
}

// IssuePurpose implements [Service].
func (s *tokenService) IssuePurpose(subjectID string, purpose models.TokenPurpose) (string, time.Time, error) {
	var ttl time.Duration
	switch purpose {
	case models.PurposeEmailVerify:
		ttl = s.verifyTTL
	case models.PurposePasswordReset:
		ttl = s.resetTTL
	default:
		return "", time.Time{}, fmt.Errorf("%w: %q is not a purpose-token kind", ErrUnsupportedPurpose, purpose)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subjectID,
			ID:        ksuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Purpose: purpose,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing %s token: %w", purpose, err)
	}

	return signed, expiresAt, nil
}

// Verify implements [Service]. Low-level jwt errors are normalised into the
// package sentinels so callers never inspect library error values.
func (s *tokenService) Verify(tokenString string, expectedPurpose models.TokenPurpose) (models.Claims, error) {
	var claims models.Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.signKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return models.Claims{}, ErrSignatureInvalid
		default:
			return models.Claims{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
		}
	}

	if claims.Subject == "" {
		return models.Claims{}, ErrTokenMalformed
	}

	if expectedPurpose != "" && claims.Purpose != expectedPurpose {
		return models.Claims{}, ErrPurposeMismatch
	}

	return claims, nil
}
