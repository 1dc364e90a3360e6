package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// Key prefixes used in the key-value store. The email and wallet entries
// are secondary indexes pointing at the primary user record; they are
// maintained on every identity write.
const (
	userKeyPrefix   = "user:"
	emailKeyPrefix  = "user-email:"
	walletKeyPrefix = "user-wallet:"
)

// identityRepository is the [KVStore]-backed implementation of
// [IdentityRepository]. Identity records are stored as JSON under
// user:{id}; lookups by email and wallet go through index records that
// hold only the identity id.
//
// The underlying store offers last-writer-wins semantics; the Version
// check in [identityRepository.Save] is an optimistic guard on top of it,
// so concurrent credential rotation for one identity surfaces
// [ErrVersionConflict] instead of silently interleaving.
type identityRepository struct {
	kv     KVStore
	logger *logger.Logger
}

// NewIdentityRepository constructs an [IdentityRepository] backed by the
// provided key-value store and logger.
func NewIdentityRepository(kv KVStore, logger *logger.Logger) IdentityRepository {
	logger.Debug().Msg("creating identity repository")
	return &identityRepository{
		kv:     kv,
		logger: logger,
	}
}

// NormalizeEmail lower-cases and trims an email so index lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeWallet lower-cases a hex public key for index lookups.
func NormalizeWallet(publicKey string) string {
	return strings.ToLower(strings.TrimSpace(publicKey))
}

// Create implements [IdentityRepository].
func (r *identityRepository) Create(ctx context.Context, identity models.Identity) (models.Identity, error) {
	log := logger.FromContext(ctx)

	email := NormalizeEmail(identity.Email)
	if email != "" {
		if _, err := r.kv.Get(ctx, emailKeyPrefix+email); err == nil {
			return models.Identity{}, ErrEmailAlreadyExists
		} else if !errors.Is(err, ErrKeyNotFound) {
			return models.Identity{}, fmt.Errorf("checking email index: %w", err)
		}
	}

	wallet := NormalizeWallet(identity.PublicKey)
	if wallet != "" {
		if _, err := r.kv.Get(ctx, walletKeyPrefix+wallet); err == nil {
			return models.Identity{}, ErrWalletAlreadyBound
		} else if !errors.Is(err, ErrKeyNotFound) {
			return models.Identity{}, fmt.Errorf("checking wallet index: %w", err)
		}
	}

	now := time.Now().UTC()
	identity.Email = email
	identity.Version = 1
	identity.CreatedAt = now
	identity.UpdatedAt = now

	if err := r.writeRecord(ctx, identity); err != nil {
		log.Err(err).Str("id", identity.ID).Msg("identity creation ended with error")
		return models.Identity{}, err
	}

	return identity, nil
}

// GetByID implements [IdentityRepository].
func (r *identityRepository) GetByID(ctx context.Context, id string) (models.Identity, error) {
	raw, err := r.kv.Get(ctx, userKeyPrefix+id)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.Identity{}, ErrIdentityNotFound
		}
		return models.Identity{}, fmt.Errorf("loading identity record: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return models.Identity{}, fmt.Errorf("decoding identity record: %w", err)
	}

	return identity, nil
}

// GetByEmail implements [IdentityRepository].
func (r *identityRepository) GetByEmail(ctx context.Context, email string) (models.Identity, error) {
	return r.getByIndex(ctx, emailKeyPrefix+NormalizeEmail(email))
}

// GetByWallet implements [IdentityRepository].
func (r *identityRepository) GetByWallet(ctx context.Context, publicKey string) (models.Identity, error) {
	return r.getByIndex(ctx, walletKeyPrefix+NormalizeWallet(publicKey))
}

func (r *identityRepository) getByIndex(ctx context.Context, indexKey string) (models.Identity, error) {
	id, err := r.kv.Get(ctx, indexKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.Identity{}, ErrIdentityNotFound
		}
		return models.Identity{}, fmt.Errorf("resolving index: %w", err)
	}

	return r.GetByID(ctx, string(id))
}

// Save implements [IdentityRepository].
func (r *identityRepository) Save(ctx context.Context, identity models.Identity) (models.Identity, error) {
	log := logger.FromContext(ctx)

	current, err := r.GetByID(ctx, identity.ID)
	if err != nil {
		return models.Identity{}, err
	}

	if current.Version != identity.Version {
		log.Warn().
			Str("id", identity.ID).
			Int64("stored_version", current.Version).
			Int64("caller_version", identity.Version).
			Msg("identity version conflict")
		return models.Identity{}, ErrVersionConflict
	}

	identity.Email = NormalizeEmail(identity.Email)
	identity.Version++
	identity.UpdatedAt = time.Now().UTC()

	if err := r.writeRecord(ctx, identity); err != nil {
		log.Err(err).Str("id", identity.ID).Msg("identity save ended with error")
		return models.Identity{}, err
	}

	// Retire stale index entries when the indexed fields changed. Reset
	// re-keys the account, so the wallet index moves with the new key.
	if current.Email != identity.Email && current.Email != "" {
		if err := r.kv.Delete(ctx, emailKeyPrefix+current.Email); err != nil {
			log.Err(err).Str("id", identity.ID).Msg("removing stale email index failed")
		}
	}
	oldWallet, newWallet := NormalizeWallet(current.PublicKey), NormalizeWallet(identity.PublicKey)
	if oldWallet != newWallet && oldWallet != "" {
		if err := r.kv.Delete(ctx, walletKeyPrefix+oldWallet); err != nil {
			log.Err(err).Str("id", identity.ID).Msg("removing stale wallet index failed")
		}
	}

	return identity, nil
}

// writeRecord stores the primary record and refreshes both secondary
// indexes.
func (r *identityRepository) writeRecord(ctx context.Context, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encoding identity record: %w", err)
	}

	if err := r.kv.Put(ctx, userKeyPrefix+identity.ID, raw); err != nil {
		return fmt.Errorf("storing identity record: %w", err)
	}

	if identity.Email != "" {
		if err := r.kv.Put(ctx, emailKeyPrefix+identity.Email, []byte(identity.ID)); err != nil {
			return fmt.Errorf("storing email index: %w", err)
		}
	}

	if wallet := NormalizeWallet(identity.PublicKey); wallet != "" {
		if err := r.kv.Put(ctx, walletKeyPrefix+wallet, []byte(identity.ID)); err != nil {
			return fmt.Errorf("storing wallet index: %w", err)
		}
	}

	return nil
}
