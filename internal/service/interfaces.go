package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// AccountService is the orchestration surface of the custody subsystem:
// registration, login, session verification, credential rotation and the
// purpose-token flows.
type AccountService interface {
	// Register creates a password identity: generates the wallet keypair,
	// encrypts the private key under the password, hashes the password and
	// persists everything. Returns a session token and, this one time, the
	// recovery mnemonic.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)

	// Login verifies the password and issues a session token. Wrong
	// password and unknown email are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (models.AuthResult, error)

	// WalletConnect logs in (or lazily creates) a federated identity keyed
	// by its wallet public key. Such identities carry no password hash
	// until the user completes profile setup.
	WalletConnect(ctx context.Context, publicKey string) (models.AuthResult, error)

	// Profile loads the identity for an authenticated subject.
	Profile(ctx context.Context, id string) (models.Identity, error)

	// VerifySession checks a raw session token and loads the identity it
	// belongs to. The authentication gate is its only caller.
	VerifySession(ctx context.Context, tokenString string) (models.Identity, models.Claims, error)

	// ChangePassword rotates the login credential: verifies the old
	// password, decrypts the private key with it, re-encrypts under the
	// new password and re-hashes. All-or-nothing from the caller's view.
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (models.Identity, error)

	// RequestEmailVerification issues a fresh email-verify token for the
	// subject, superseding any outstanding one, and queues its delivery.
	RequestEmailVerification(ctx context.Context, id string) error

	// VerifyEmail consumes an email-verify token. A token that was
	// superseded or already consumed fails.
	VerifyEmail(ctx context.Context, tokenString string) (models.Identity, error)

	// RequestPasswordReset issues a reset token for the account behind
	// email, superseding any outstanding one, and queues its delivery.
	// Unknown emails are not reported to the caller.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token. Without the old password the
	// stored private key is unrecoverable, so the account is re-keyed with
	// a brand-new keypair. Deliberate trade-off, not a defect.
	ResetPassword(ctx context.Context, tokenString, newPassword string) (models.AuthResult, error)
}

// TokenDeliveryQueue hands purpose-token deliveries to the background mail
// dispatcher without blocking the request path.
type TokenDeliveryQueue interface {
	Enqueue(delivery models.TokenDelivery)
}
