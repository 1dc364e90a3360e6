package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries values that fail validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on any login failure. It covers
	// both "wrong password" and "no such account" so responses cannot be
	// used to enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidOldPassword is returned by ChangePassword when the old
	// password does not verify against the stored hash. The stored
	// credentials are left untouched.
	ErrInvalidOldPassword = errors.New("old password is invalid")

	// ErrPasswordAuthDisabled is returned when a password operation is
	// attempted on an identity that has no password auth method (e.g. a
	// wallet-only account before profile setup).
	ErrPasswordAuthDisabled = errors.New("password authentication is not enabled for this account")

	// ErrEmailAlreadyVerified is returned when a verification token is
	// requested for an account whose email is already verified.
	ErrEmailAlreadyVerified = errors.New("email is already verified")

	// ErrTokenSuperseded is returned when a purpose token is present and
	// well-formed but is no longer the latest outstanding token for its
	// subject: a newer one was issued, or it was already consumed.
	ErrTokenSuperseded = errors.New("token was superseded or already consumed")
)
