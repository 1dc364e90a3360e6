package models

import (
	"errors"
	"slices"
	"time"
)

// Role is the platform role assigned to an account. The supply-chain domain
// distinguishes participants by their position in the product flow.
type Role string

const (
	RoleFarmer    Role = "FARMER"
	RoleCollector Role = "COLLECTOR"
	RoleTrader    Role = "TRADER"
	RoleRetailer  Role = "RETAILER"
	RoleConsumer  Role = "CONSUMER"
	RoleAdmin     Role = "ADMIN"
	RoleUnknown   Role = "UNKNOWN"
)

// Valid reports whether r is one of the known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleCollector, RoleTrader, RoleRetailer,
		RoleConsumer, RoleAdmin, RoleUnknown:
		return true
	}
	return false
}

// Auth methods an Identity may carry. An identity created through the
// password registration flow has AuthMethodPassword; one created through a
// wallet connect has AuthMethodWallet until the user completes profile setup.
const (
	AuthMethodPassword = "password"
	AuthMethodOAuth    = "oauth"
	AuthMethodWallet   = "wallet"
)

// ErrIdentityInvalid is returned by [Identity.Validate] when a credential
// invariant is violated.
var ErrIdentityInvalid = errors.New("identity violates credential invariants")

// Identity is the account record managed by the custody subsystem.
//
// PasswordHash holds the serialized hex(salt):hex(hash) form produced by the
// password hasher; EncryptedPrivateKey holds the serialized
// hex(salt):hex(iv):hex(ciphertext) form produced by the key-encryption
// service. Both are opaque to every layer except internal/crypto.
type Identity struct {
	// ID is the unique account identifier (UUID string).
	ID string `json:"id"`

	// Email is the normalized (lower-cased, trimmed) login email.
	Email string `json:"email"`

	// Name is the display name of the account holder.
	Name string `json:"name"`

	// Role is the platform role of the account.
	Role Role `json:"role"`

	// PasswordHash is the serialized one-way hash of the login password.
	// Empty for identities that only federate through wallet or oauth login.
	PasswordHash string `json:"password_hash,omitempty"`

	// PublicKey is the hex-encoded compressed secp256k1 public key that
	// serves as the account's wallet identity.
	PublicKey string `json:"public_key"`

	// EncryptedPrivateKey is the serialized at-rest ciphertext of the
	// matching private key, encrypted under the login password.
	EncryptedPrivateKey string `json:"encrypted_private_key,omitempty"`

	// AuthMethods lists the login mechanisms enabled for this account.
	AuthMethods []string `json:"auth_methods"`

	// EmailVerified reports whether the account completed email verification.
	EmailVerified bool `json:"email_verified"`

	// VerifyToken is the latest outstanding email-verification token, if any.
	// Issuing a new one supersedes any previous unconsumed token.
	VerifyToken       string     `json:"verify_token,omitempty"`
	VerifyTokenExpiry *time.Time `json:"verify_token_expiry,omitempty"`

	// ResetToken is the latest outstanding password-reset token, if any.
	ResetToken       string     `json:"reset_token,omitempty"`
	ResetTokenExpiry *time.Time `json:"reset_token_expiry,omitempty"`

	// Version is the optimistic-concurrency counter checked on every save.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAuthMethod reports whether the given auth method is enabled.
func (i Identity) HasAuthMethod(method string) bool {
	return slices.Contains(i.AuthMethods, method)
}

// Validate checks the credential invariants of the record. An identity with
// the password auth method must carry both a password hash and an encrypted
// private key; an identity without it (wallet/oauth federated login) may
// leave the password hash empty until profile setup completes.
func (i Identity) Validate() error {
	if i.ID == "" || !i.Role.Valid() {
		return ErrIdentityInvalid
	}

	if i.HasAuthMethod(AuthMethodPassword) {
		if i.PasswordHash == "" || i.EncryptedPrivateKey == "" {
			return ErrIdentityInvalid
		}
	}

	return nil
}

// Sanitized returns a copy of the identity with every credential field
// cleared. Handlers return this form to clients so that hashes, ciphertexts
// and outstanding tokens never leave the trust boundary.
func (i Identity) Sanitized() Identity {
	i.PasswordHash = ""
	i.EncryptedPrivateKey = ""
	i.VerifyToken = ""
	i.VerifyTokenExpiry = nil
	i.ResetToken = ""
	i.ResetTokenExpiry = nil
	return i
}
