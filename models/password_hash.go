package models

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// passwordHashSeparator joins the two hex segments of a serialized password
// hash: hex(salt):hex(hash).
const passwordHashSeparator = ":"

// ErrMalformedPasswordHash is returned when a stored password hash does not
// split into exactly two non-empty hex segments. Verification code treats
// this condition as "no match", never as a crash.
var ErrMalformedPasswordHash = errors.New("malformed password hash")

// PasswordHash is the one-way hash of a login password together with the
// random salt it was derived with.
type PasswordHash struct {
	Salt []byte
	Hash []byte
}

// Serialize renders the value as hex(salt):hex(hash).
func (p PasswordHash) Serialize() string {
	return hex.EncodeToString(p.Salt) + passwordHashSeparator + hex.EncodeToString(p.Hash)
}

// ParsePasswordHash parses the serialized hex(salt):hex(hash) form,
// failing closed with [ErrMalformedPasswordHash] on any deviation.
func ParsePasswordHash(s string) (PasswordHash, error) {
	segments := strings.Split(s, passwordHashSeparator)
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return PasswordHash{}, ErrMalformedPasswordHash
	}

	salt, err := hex.DecodeString(segments[0])
	if err != nil {
		return PasswordHash{}, fmt.Errorf("%w: %w", ErrMalformedPasswordHash, err)
	}

	hash, err := hex.DecodeString(segments[1])
	if err != nil {
		return PasswordHash{}, fmt.Errorf("%w: %w", ErrMalformedPasswordHash, err)
	}

	return PasswordHash{Salt: salt, Hash: hash}, nil
}
