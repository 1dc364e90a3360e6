package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// KVStore is the opaque get/put persistence collaborator of the custody
// subsystem. Values are raw bytes keyed by string; all schema knowledge
// lives in the repositories built on top.
type KVStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// IdentityRepository persists account records over a [KVStore] and
// maintains the email and wallet secondary indexes on every write.
type IdentityRepository interface {
	// Create stores a brand-new identity and its index entries. Fails with
	// [ErrEmailAlreadyExists] or [ErrWalletAlreadyBound] when an index
	// entry for the same email or public key already points elsewhere.
	Create(ctx context.Context, identity models.Identity) (models.Identity, error)

	// GetByID loads the identity stored under user:{id}.
	GetByID(ctx context.Context, id string) (models.Identity, error)

	// GetByEmail resolves the user-email:{normalizedEmail} index and loads
	// the identity it points to.
	GetByEmail(ctx context.Context, email string) (models.Identity, error)

	// GetByWallet resolves the user-wallet:{normalizedPublicKey} index and
	// loads the identity it points to.
	GetByWallet(ctx context.Context, publicKey string) (models.Identity, error)

	// Save overwrites an existing identity after an optimistic version
	// check: the stored Version must equal the Version the caller read, or
	// [ErrVersionConflict] is returned and nothing is written. On success
	// the persisted record carries Version+1 and a fresh UpdatedAt.
	Save(ctx context.Context, identity models.Identity) (models.Identity, error)
}

// ErrorClassificator classifies low-level storage errors as retryable or
// not, so callers can decide whether a failed operation is worth a retry.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
