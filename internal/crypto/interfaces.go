package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

import (
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// PasswordHasher produces and verifies one-way login-password hashes.
// The hash is independent of the key-encryption material: verifying a
// password never exposes or derives the symmetric key protecting the
// wallet private key.
type PasswordHasher interface {
	// Hash derives a salted one-way hash of password with a fresh random
	// salt. The result serializes as hex(salt):hex(hash).
	Hash(password string) (models.PasswordHash, error)

	// Verify recomputes the hash of password under the salt stored in the
	// serialized form and compares in constant time. It fails closed:
	// malformed stored hashes report "no match", never an error.
	Verify(password, stored string) bool
}

// KeyCipher encrypts and decrypts a wallet private key under a password.
type KeyCipher interface {
	// Encrypt derives a symmetric key from password with a fresh salt and
	// encrypts privateKeyHex under a fresh IV. Two encryptions of the same
	// inputs never produce the same ciphertext.
	Encrypt(privateKeyHex, password string) (models.EncryptedPrivateKey, error)

	// Decrypt re-derives the symmetric key from password and the stored
	// salt and recovers the private key. A wrong password surfaces as
	// [ErrDecryptionFailed]; partial plaintext is never returned.
	Decrypt(enc models.EncryptedPrivateKey, password string) (string, error)
}
