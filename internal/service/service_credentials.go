package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/keys"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/store"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// ChangePassword implements [AccountService].
//
// Order matters: the stored hash and ciphertext are only replaced after the
// old password both verified and decrypted the private key. Persistence is
// a single versioned save, so no intermediate state ever reaches the store
// and a concurrent rotation for the same identity surfaces
// [store.ErrVersionConflict] instead of interleaving.
func (a *accountService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if id == "" || oldPassword == "" {
		return models.Identity{}, ErrInvalidDataProvided
	}
	if err := a.policy.Validate(ctx, newPassword); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	identity, err := a.identities.GetByID(ctx, id)
	if err != nil {
		return models.Identity{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	if !identity.HasAuthMethod(models.AuthMethodPassword) || identity.PasswordHash == "" {
		return models.Identity{}, ErrPasswordAuthDisabled
	}

	if !a.hasher.Verify(oldPassword, identity.PasswordHash) {
		log.Warn().Str("id", id).Msg("credential rotation with wrong old password")
		return models.Identity{}, ErrInvalidOldPassword
	}

	encryptedKey, err := models.ParseEncryptedPrivateKey(identity.EncryptedPrivateKey)
	if err != nil {
		log.Err(err).Str("id", id).Msg("stored encrypted key is malformed")
		return models.Identity{}, err
	}

	privateKey, err := a.cipher.Decrypt(encryptedKey, oldPassword)
	if err != nil {
		log.Err(err).Str("id", id).Msg("private key decryption failed during rotation")
		return models.Identity{}, err
	}

	// The ciphertext carried an integrity tag, so the recovered scalar must
	// match the stored public key; a mismatch means the record itself is
	// inconsistent.
	if derived, derr := keys.PublicKeyFor(privateKey); derr != nil || derived != identity.PublicKey {
		log.Error().Str("id", id).Msg("recovered private key does not match stored public key")
	}

	reEncrypted, err := a.cipher.Encrypt(privateKey, newPassword)
	if err != nil {
		return models.Identity{}, fmt.Errorf("private key re-encryption failed: %w", err)
	}

	newHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return models.Identity{}, fmt.Errorf("password hashing failed: %w", err)
	}

	identity.PasswordHash = newHash.Serialize()
	identity.EncryptedPrivateKey = reEncrypted.Serialize()

	updated, err := a.identities.Save(ctx, identity)
	if err != nil {
		log.Err(err).Str("id", id).Msg("saving rotated credentials failed")
		return models.Identity{}, fmt.Errorf("saving rotated credentials failed: %w", err)
	}

	log.Info().Str("id", id).Msg("credentials rotated")

	return updated, nil
}

// RequestEmailVerification implements [AccountService].
func (a *accountService) RequestEmailVerification(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if id == "" {
		return ErrInvalidDataProvided
	}

	identity, err := a.identities.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("identity lookup failed: %w", err)
	}

	if identity.EmailVerified {
		return ErrEmailAlreadyVerified
	}
	if identity.Email == "" {
		return ErrInvalidDataProvided
	}

	if err := a.issueVerifyToken(ctx, &identity); err != nil {
		log.Err(err).Str("id", id).Msg("issuing verification token failed")
		return err
	}

	return nil
}

// issueVerifyToken signs a fresh email-verify token, persists it as the
// latest outstanding one for the identity (superseding any prior token) and
// queues its delivery. The identity pointed to is updated in place with the
// saved record.
func (a *accountService) issueVerifyToken(ctx context.Context, identity *models.Identity) error {
	signed, expiresAt, err := a.tokens.IssuePurpose(identity.ID, models.PurposeEmailVerify)
	if err != nil {
		return fmt.Errorf("issuing verification token: %w", err)
	}

	identity.VerifyToken = signed
	identity.VerifyTokenExpiry = &expiresAt

	saved, err := a.identities.Save(ctx, *identity)
	if err != nil {
		return fmt.Errorf("persisting verification token: %w", err)
	}
	*identity = saved

	a.enqueueDelivery(models.TokenDelivery{
		Email:     identity.Email,
		Purpose:   models.PurposeEmailVerify,
		Token:     signed,
		ExpiresAt: expiresAt,
	})

	return nil
}

// VerifyEmail implements [AccountService]. The token must both verify as an
// email-verify token and still be the latest outstanding one stored on the
// identity; consuming it clears the stored token, making it single-use.
func (a *accountService) VerifyEmail(ctx context.Context, tokenString string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokens.Verify(tokenString, models.PurposeEmailVerify)
	if err != nil {
		return models.Identity{}, err
	}

	identity, err := a.identities.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.Identity{}, ErrTokenSuperseded
		}
		return models.Identity{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	if identity.VerifyToken == "" || identity.VerifyToken != tokenString {
		log.Warn().Str("id", identity.ID).Msg("superseded or consumed verification token presented")
		return models.Identity{}, ErrTokenSuperseded
	}

	identity.EmailVerified = true
	identity.VerifyToken = ""
	identity.VerifyTokenExpiry = nil

	updated, err := a.identities.Save(ctx, identity)
	if err != nil {
		return models.Identity{}, fmt.Errorf("persisting email verification failed: %w", err)
	}

	log.Info().Str("id", updated.ID).Msg("email verified")

	return updated, nil
}

// RequestPasswordReset implements [AccountService]. Unknown emails return
// success so responses cannot be used to enumerate accounts; the miss is
// logged server-side.
func (a *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	identity, err := a.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			log.Warn().Str("email", store.NormalizeEmail(email)).Msg("password reset for unknown email")
			return nil
		}
		return fmt.Errorf("identity lookup failed: %w", err)
	}

	signed, expiresAt, err := a.tokens.IssuePurpose(identity.ID, models.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("issuing reset token: %w", err)
	}

	identity.ResetToken = signed
	identity.ResetTokenExpiry = &expiresAt

	if _, err := a.identities.Save(ctx, identity); err != nil {
		return fmt.Errorf("persisting reset token: %w", err)
	}

	a.enqueueDelivery(models.TokenDelivery{
		Email:     identity.Email,
		Purpose:   models.PurposePasswordReset,
		Token:     signed,
		ExpiresAt: expiresAt,
	})

	return nil
}

// ResetPassword implements [AccountService].
//
// The old password is not available here, so the stored private key cannot
// be decrypted. The account is re-keyed: a brand-new keypair replaces the
// old one and the old wallet identity is gone. This is the documented
// behavior of reset, not a recovery path.
func (a *accountService) ResetPassword(ctx context.Context, tokenString, newPassword string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return models.AuthResult{}, ErrInvalidDataProvided
	}
	if err := a.policy.Validate(ctx, newPassword); err != nil {
		return models.AuthResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	claims, err := a.tokens.Verify(tokenString, models.PurposePasswordReset)
	if err != nil {
		return models.AuthResult{}, err
	}

	identity, err := a.identities.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			return models.AuthResult{}, ErrTokenSuperseded
		}
		return models.AuthResult{}, fmt.Errorf("identity lookup failed: %w", err)
	}

	if identity.ResetToken == "" || identity.ResetToken != tokenString {
		log.Warn().Str("id", identity.ID).Msg("superseded or consumed reset token presented")
		return models.AuthResult{}, ErrTokenSuperseded
	}

	pair, err := keys.Generate()
	if err != nil {
		log.Err(err).Str("id", identity.ID).Msg("keypair generation failed during reset")
		return models.AuthResult{}, fmt.Errorf("keypair generation failed: %w", err)
	}

	encryptedKey, err := a.cipher.Encrypt(pair.PrivateKey, newPassword)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("private key encryption failed: %w", err)
	}

	newHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("password hashing failed: %w", err)
	}

	identity.PasswordHash = newHash.Serialize()
	identity.PublicKey = pair.PublicKey
	identity.EncryptedPrivateKey = encryptedKey.Serialize()
	identity.ResetToken = ""
	identity.ResetTokenExpiry = nil
	if !identity.HasAuthMethod(models.AuthMethodPassword) {
		identity.AuthMethods = append(identity.AuthMethods, models.AuthMethodPassword)
	}

	updated, err := a.identities.Save(ctx, identity)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("persisting reset credentials failed: %w", err)
	}

	mnemonic, err := keys.Mnemonic(pair.PrivateKey)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("mnemonic encoding failed: %w", err)
	}

	sessionToken, err := a.tokens.IssueSession(updated)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("issuing session token: %w", err)
	}

	log.Info().Str("id", updated.ID).Msg("account re-keyed via password reset")

	return models.AuthResult{
		Identity: updated.Sanitized(),
		Token:    sessionToken,
		Mnemonic: mnemonic,
	}, nil
}
