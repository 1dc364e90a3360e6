// SPDX-License-Identifier: Apache-2.0

// Package crypto implements the password-facing cryptography of the custody
// subsystem: one-way password hashing for login verification and
// password-based encryption of wallet private keys at rest.
//
// A single key-derivation strategy (PBKDF2-SHA512, 100 000 iterations) is
// used for both concerns, with independent salts per use, so there is
// exactly one place to tune cost parameters.
package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

const (
	// saltSize is the length of every random salt, for hashing and for key
	// derivation alike.
	saltSize = 16

	// hashSize is the PBKDF2 output length for login-password hashes.
	hashSize = 64

	// DefaultIterations is the PBKDF2 iteration count used unless a
	// deployment overrides it. CPU-bound on purpose.
	DefaultIterations = 100_000
)

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	// iterations is the PBKDF2 cost parameter. Stored in the struct so it
	// can be tuned per deployment target.
	iterations int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given PBKDF2
// iteration count. Non-positive values fall back to [DefaultIterations].
func NewPasswordHasher(iterations int) PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &passwordHasher{iterations: iterations}
}

// Hash implements [PasswordHasher]. It reads a 16-byte salt from the OS
// CSPRNG and derives a 64-byte PBKDF2-SHA512 hash of password. Returns an
// error only if the random read fails, which callers must treat as fatal
// for the operation in flight.
func (h *passwordHasher) Hash(password string) (models.PasswordHash, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return models.PasswordHash{}, fmt.Errorf("generating password salt: %w", err)
	}

	hash := pbkdf2.Key([]byte(password), salt, h.iterations, hashSize, sha512.New)

	return models.PasswordHash{Salt: salt, Hash: hash}, nil
}

// Verify implements [PasswordHasher]. It parses the stored
// hex(salt):hex(hash) form, re-derives the hash of password under the
// stored salt and compares with [hmac.Equal] so the comparison cost does
// not depend on where the first differing byte sits.
//
// Any parse failure of stored reports false. A corrupted record behaves
// like a wrong password, not like a server fault.
func (h *passwordHasher) Verify(password, stored string) bool {
	parsed, err := models.ParsePasswordHash(stored)
	if err != nil {
		return false
	}

	recomputed := pbkdf2.Key([]byte(password), parsed.Salt, h.iterations, len(parsed.Hash), sha512.New)

	return hmac.Equal(recomputed, parsed.Hash)
}
