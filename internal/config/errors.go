package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or conflicting.
var (
	// ErrMissingTokenSignKey indicates that no token signing secret was
	// provided by any configuration source. This is a startup integrity
	// fault; the application must not run with a fixed or empty secret.
	ErrMissingTokenSignKey = errors.New("token signing key is required")

	// ErrAmbiguousStorageConfigs indicates that both the Postgres DSN and
	// the SQLite path were supplied; the key-value store runs on exactly
	// one backend.
	ErrAmbiguousStorageConfigs = errors.New("ambiguous storage configuration: both postgres and sqlite configured")
)
