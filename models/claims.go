package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose scopes an issued token to exactly one operation. A token
// verified for one purpose is rejected when presented for another, so a
// password-reset token can never be replayed as a session token.
type TokenPurpose string

const (
	PurposeSession       TokenPurpose = "session"
	PurposeEmailVerify   TokenPurpose = "email-verify"
	PurposePasswordReset TokenPurpose = "password-reset"
)

// Valid reports whether p is one of the known token purposes.
func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeSession, PurposeEmailVerify, PurposePasswordReset:
		return true
	}
	return false
}

// Claims is the signed claim set carried by every token the subsystem
// issues. Session tokens additionally carry the role and public-key claims
// consumed by downstream authorization; purpose tokens carry only the
// subject and the purpose tag.
type Claims struct {
	jwt.RegisteredClaims

	// Purpose tags the token kind. Checked on every verification.
	Purpose TokenPurpose `json:"purpose"`

	// Role mirrors the identity's platform role. Session tokens only.
	Role Role `json:"role,omitempty"`

	// PublicKey mirrors the identity's wallet public key. Session tokens only.
	PublicKey string `json:"public_key,omitempty"`
}
