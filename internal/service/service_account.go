package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/crypto"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/keys"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/token"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/utils"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/validators"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// accountService is the concrete implementation of [AccountService].
// It owns no mutable state of its own; every dependency is read-only after
// construction, so the service is safe for concurrent use.
type accountService struct {
	// identities is the data-access layer for account records.
	identities store.IdentityRepository

	// hasher produces and verifies the one-way login-password hashes.
	hasher crypto.PasswordHasher

	// cipher encrypts and decrypts wallet private keys under passwords.
	cipher crypto.KeyCipher

	// tokens issues and verifies session and purpose tokens.
	tokens token.Service

	// deliveries queues purpose-token deliveries for background dispatch.
	deliveries TokenDeliveryQueue

	// policy validates registration payloads and new passwords.
	policy validators.Validator

	// uuid generates identity IDs.
	uuid *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] wired to the given
// repository, token service and delivery queue, with hashing cost taken
// from cfg.
func NewAccountService(identities store.IdentityRepository, tokens token.Service, deliveries TokenDeliveryQueue, cfg config.App, log *logger.Logger) AccountService {
	return &accountService{
		identities: identities,
		hasher:     crypto.NewPasswordHasher(cfg.HashIterations),
		cipher:     crypto.NewKeyCipher(cfg.HashIterations),
		tokens:     tokens,
		deliveries: deliveries,
		policy:     validators.NewCredentialPolicy(),
		uuid:       utils.NewUUIDGenerator(),
		logger:     log,
	}
}

// Register implements [AccountService].
//
// The private key exists in plaintext only inside this call: it is
// produced, encrypted under the password and released. The mnemonic is the
// user's one-time offline backup of the same key; it is returned once and
// never stored.
func (a *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if err := a.policy.Validate(ctx, req); err != nil {
		log.Error().Err(err).Msg("registration request rejected by policy")
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	pair, err := keys.Generate()
	if err != nil {
		// Randomness exhaustion. The request cannot proceed safely.
		log.Err(err).Msg("keypair generation failed")
		return models.AuthResult{}, fmt.Errorf("keypair generation failed: %w", err)
	}

	encryptedKey, err := a.cipher.Encrypt(pair.PrivateKey, req.Password)
	if err != nil {
		log.Err(err).Msg("private key encryption failed")
		return models.AuthResult{}, fmt.Errorf("private key encryption failed: %w", err)
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.AuthResult{}, fmt.Errorf("password hashing failed: %w", err)
	}

	identity := models.Identity{
		ID:                  a.uuid.Generate(),
		Email:               req.Email,
		Name:                req.Name,
		Role:                req.Role,
		PasswordHash:        passwordHash.Serialize(),
		PublicKey:           pair.PublicKey,
		EncryptedPrivateKey: encryptedKey.Serialize(),
		AuthMethods:         []string{models.AuthMethodPassword},
	}

	if err := identity.Validate(); err != nil {
		return models.AuthResult{}, err
	}

	created, err := a.identities.Create(ctx, identity)
	if err != nil {
		log.Err(err).Str("id", identity.ID).Msg("identity creation ended with error")
		return models.AuthResult{}, fmt.Errorf("identity creation ended with error: %w", err)
	}

	// Best effort: registration succeeds even when the verification token
	// cannot be issued; the user can re-request it later.
	if err := a.issueVerifyToken(ctx, &created); err != nil {
		log.Err(err).Str("id", created.ID).Msg("issuing verification token failed")
	}

	mnemonic, err := keys.Mnemonic(pair.PrivateKey)
	if err != nil {
		log.Err(err).Str("id", created.ID).Msg("mnemonic encoding failed")
		return models.AuthResult{}, fmt.Errorf("mnemonic encoding failed: %w", err)
	}

	sessionToken, err := a.tokens.IssueSession(created)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("issuing session token: %w", err)
	}

	log.Info().Str("id", created.ID).Str("role", string(created.Role)).Msg("identity registered")

	return models.AuthResult{
		Identity: created.Sanitized(),
		Token:    sessionToken,
		Mnemonic: mnemonic,
	}, nil
}

// Login implements [AccountService]. Every failure path reports
// [ErrInvalidCredentials]; logs carry the diagnostic detail instead.
func (a *accountService) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.AuthResult{}, ErrInvalidDataProvided
	}

	identity, err := a.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			log.Warn().Str("email", store.NormalizeEmail(email)).Msg("login for unknown email")
			return models.AuthResult{}, ErrInvalidCredentials
		}
		return models.AuthResult{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	if !identity.HasAuthMethod(models.AuthMethodPassword) || identity.PasswordHash == "" {
		log.Warn().Str("id", identity.ID).Msg("password login for non-password identity")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	if !a.hasher.Verify(password, identity.PasswordHash) {
		log.Warn().Str("id", identity.ID).Msg("wrong password")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	sessionToken, err := a.tokens.IssueSession(identity)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("issuing session token: %w", err)
	}

	return models.AuthResult{
		Identity: identity.Sanitized(),
		Token:    sessionToken,
	}, nil
}

// WalletConnect implements [AccountService]. The proof that the caller
// controls the key behind publicKey happens at a higher layer; here the key
// is only validated and mapped to an identity.
func (a *accountService) WalletConnect(ctx context.Context, publicKey string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if publicKey == "" {
		return models.AuthResult{}, ErrInvalidDataProvided
	}
	if _, err := keys.ParsePublicKey(publicKey); err != nil {
		log.Warn().Msg("wallet connect with malformed public key")
		return models.AuthResult{}, ErrInvalidDataProvided
	}

	identity, err := a.identities.GetByWallet(ctx, publicKey)
	switch {
	case err == nil:
		// Known wallet; plain federated login.
	case errors.Is(err, store.ErrIdentityNotFound):
		identity = models.Identity{
			ID:          a.uuid.Generate(),
			Role:        models.RoleUnknown,
			PublicKey:   store.NormalizeWallet(publicKey),
			AuthMethods: []string{models.AuthMethodWallet},
		}

		identity, err = a.identities.Create(ctx, identity)
		if err != nil {
			return models.AuthResult{}, fmt.Errorf("wallet identity creation ended with error: %w", err)
		}
		log.Info().Str("id", identity.ID).Msg("wallet identity created")
	default:
		return models.AuthResult{}, fmt.Errorf("wallet lookup failed: %w", err)
	}

	sessionToken, err := a.tokens.IssueSession(identity)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("issuing session token: %w", err)
	}

	return models.AuthResult{
		Identity: identity.Sanitized(),
		Token:    sessionToken,
	}, nil
}

// Profile implements [AccountService].
func (a *accountService) Profile(ctx context.Context, id string) (models.Identity, error) {
	if id == "" {
		return models.Identity{}, ErrInvalidDataProvided
	}

	identity, err := a.identities.GetByID(ctx, id)
	if err != nil {
		return models.Identity{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	return identity, nil
}

// VerifySession implements [AccountService]. Token-level failures pass
// through as the token package sentinels; a valid token whose subject no
// longer exists reports [ErrInvalidCredentials].
func (a *accountService) VerifySession(ctx context.Context, tokenString string) (models.Identity, models.Claims, error) {
	claims, err := a.tokens.Verify(tokenString, models.PurposeSession)
	if err != nil {
		return models.Identity{}, models.Claims{}, err
	}

	identity, err := a.identities.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.Identity{}, models.Claims{}, ErrInvalidCredentials
		}
		return models.Identity{}, models.Claims{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	return identity, claims, nil
}

func (a *accountService) enqueueDelivery(delivery models.TokenDelivery) {
	if a.deliveries != nil {
		a.deliveries.Enqueue(delivery)
	}
}
