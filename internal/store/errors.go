package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by [KVStore.Get] when no value is stored
	// under the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIdentityNotFound is returned when a lookup by id, email or wallet
	// public key matches no stored identity.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrEmailAlreadyExists is returned when an attempt to create an
	// identity fails because the email index already points to another
	// account.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrWalletAlreadyBound is returned when the wallet index already
	// points to another account.
	ErrWalletAlreadyBound = errors.New("wallet public key already bound")

	// ErrVersionConflict is returned when an optimistic-locking check
	// fails: the version supplied by the caller does not match the current
	// version in the store, meaning a concurrent writer updated the record
	// since the caller last read it. Credential rotation relies on this
	// check to stay all-or-nothing under concurrency.
	ErrVersionConflict = errors.New("identity version conflict occurred")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL-backed key-value stores when an operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
