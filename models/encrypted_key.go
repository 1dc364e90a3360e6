package models

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// encryptedKeySeparator joins the three hex segments of a serialized
// encrypted private key: hex(salt):hex(iv):hex(ciphertext).
const encryptedKeySeparator = ":"

// ErrMalformedEncryptedKey is returned when a serialized encrypted private
// key does not split into exactly three non-empty hex segments.
// Parsing fails closed: a malformed ciphertext is never partially decoded.
var ErrMalformedEncryptedKey = errors.New("malformed encrypted private key")

// EncryptedPrivateKey is the at-rest form of a wallet private key.
// Salt feeds the password key derivation, IV seeds the CBC chain,
// Ciphertext carries the padded ciphertext followed by its integrity tag.
type EncryptedPrivateKey struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// Serialize renders the value as hex(salt):hex(iv):hex(ciphertext),
// the wire and storage format of the custody subsystem.
func (e EncryptedPrivateKey) Serialize() string {
	return strings.Join([]string{
		hex.EncodeToString(e.Salt),
		hex.EncodeToString(e.IV),
		hex.EncodeToString(e.Ciphertext),
	}, encryptedKeySeparator)
}

// ParseEncryptedPrivateKey parses the serialized hex(salt):hex(iv):hex(ct)
// form. It returns [ErrMalformedEncryptedKey] unless the input splits into
// exactly three non-empty segments of valid hex.
func ParseEncryptedPrivateKey(s string) (EncryptedPrivateKey, error) {
	segments := strings.Split(s, encryptedKeySeparator)
	if len(segments) != 3 {
		return EncryptedPrivateKey{}, ErrMalformedEncryptedKey
	}

	decoded := make([][]byte, 3)
	for idx, segment := range segments {
		if segment == "" {
			return EncryptedPrivateKey{}, ErrMalformedEncryptedKey
		}

		raw, err := hex.DecodeString(segment)
		if err != nil {
			return EncryptedPrivateKey{}, fmt.Errorf("%w: %w", ErrMalformedEncryptedKey, err)
		}
		decoded[idx] = raw
	}

	return EncryptedPrivateKey{
		Salt:       decoded[0],
		IV:         decoded[1],
		Ciphertext: decoded[2],
	}, nil
}
