package models

import "time"

// RegisterRequest is the payload accepted by the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginRequest is the payload accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// WalletConnectRequest is the payload accepted by the wallet-connect
// endpoint. PublicKey is the hex-encoded compressed secp256k1 public key
// the caller proved control of at a higher layer.
type WalletConnectRequest struct {
	PublicKey string `json:"public_key"`
}

// ChangePasswordRequest is the payload accepted by the credential-rotation
// endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ResetRequest asks for a password-reset token to be delivered.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetConfirmRequest consumes a password-reset token.
type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// VerifyConfirmRequest consumes an email-verification token.
type VerifyConfirmRequest struct {
	Token string `json:"token"`
}

// AuthResult is returned by the flows that establish a session: the
// sanitized identity, the signed session token and, at registration only,
// the recovery mnemonic of the freshly generated wallet key. The mnemonic
// is shown exactly once and never persisted.
type AuthResult struct {
	Identity Identity `json:"identity"`
	Token    string   `json:"token"`
	Mnemonic string   `json:"mnemonic,omitempty"`
}

// TokenDelivery is the payload handed to the mail delivery collaborator
// when a purpose token must reach the account holder out of band.
type TokenDelivery struct {
	Email     string       `json:"email"`
	Purpose   TokenPurpose `json:"purpose"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}
