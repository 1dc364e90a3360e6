// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants.
//
// The token signing key is the one setting with no safe default: running
// without it would let the process issue forgeable tokens, so its absence
// aborts startup instead of degrading silently.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.Storage.DB.DSN != "" && cfg.Storage.SQLite.Path != "" {
		return ErrAmbiguousStorageConfigs
	}

	return nil
}
