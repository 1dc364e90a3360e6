package token

import "errors"

// Sentinel errors returned by [Service] methods. Callers match them with
// [errors.Is]; every one of them maps to an authentication failure at the
// transport layer except [ErrMissingSignKey], which aborts startup.
var (
	// ErrMissingSignKey is returned by [NewService] when no signing secret
	// was supplied by the deployment. The service never falls back to a
	// fixed or empty secret.
	ErrMissingSignKey = errors.New("token signing key is not configured")

	// ErrTokenExpired is returned when a token is presented after its
	// expires-at instant.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenMalformed is returned when a token cannot be parsed or is
	// missing required claims.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrSignatureInvalid is returned when the token signature does not
	// verify under the server-held secret.
	ErrSignatureInvalid = errors.New("token signature is invalid")

	// ErrPurposeMismatch is returned when a token is valid but was issued
	// for a different purpose than the one it is presented for.
	ErrPurposeMismatch = errors.New("token purpose mismatch")

	// ErrUnsupportedPurpose is returned by IssuePurpose for purposes that
	// are not single-operation token kinds (e.g. session).
	ErrUnsupportedPurpose = errors.New("unsupported token purpose")
)
