// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

const (
	// ivSize is the AES-CBC initialisation vector length.
	ivSize = aes.BlockSize

	// derivedKeySize covers both halves of the derived key material:
	// 32 bytes for AES-256 and 32 bytes for the HMAC-SHA256 tag key.
	derivedKeySize = 64

	// macSize is the length of the integrity tag appended to the ciphertext.
	macSize = sha256.Size
)

// keyCipher is the private implementation of [KeyCipher]. It encrypts with
// AES-256-CBC/PKCS#7 and authenticates with encrypt-then-MAC: the stored
// ciphertext is cbc(plaintext) ‖ HMAC-SHA256(iv ‖ cbc(plaintext)).
type keyCipher struct {
	iterations int
}

// NewKeyCipher constructs a [KeyCipher] with the given PBKDF2 iteration
// count. Non-positive values fall back to [DefaultIterations].
func NewKeyCipher(iterations int) KeyCipher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &keyCipher{iterations: iterations}
}

// deriveKeys stretches (password, salt) into the AES key and the MAC key.
// The same pair always yields the same keys; decryption depends on it.
func (c *keyCipher) deriveKeys(password string, salt []byte) (encKey, macKey []byte) {
	derived := pbkdf2.Key([]byte(password), salt, c.iterations, derivedKeySize, sha512.New)
	return derived[:32], derived[32:]
}

// Encrypt implements [KeyCipher]. Salt and IV are freshly random on every
// call, so encrypting the same key under the same password twice never
// yields correlated ciphertexts.
func (c *keyCipher) Encrypt(privateKeyHex, password string) (models.EncryptedPrivateKey, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return models.EncryptedPrivateKey{}, fmt.Errorf("generating encryption salt: %w", err)
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.EncryptedPrivateKey{}, fmt.Errorf("generating IV: %w", err)
	}

	encKey, macKey := c.deriveKeys(password, salt)

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return models.EncryptedPrivateKey{}, fmt.Errorf("creating cipher: %w", err)
	}

	plaintext := pad([]byte(privateKeyHex))
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	mac := hmac.New(sha256.New, macKey)
	mac.Write(iv)
	mac.Write(ciphertext)

	return models.EncryptedPrivateKey{
		Salt:       salt,
		IV:         iv,
		Ciphertext: mac.Sum(ciphertext),
	}, nil
}

// Decrypt implements [KeyCipher]. The integrity tag is checked before any
// block is decrypted, so a wrong password (wrong derived keys) or tampered
// ciphertext fails with [ErrDecryptionFailed] without releasing plaintext.
func (c *keyCipher) Decrypt(enc models.EncryptedPrivateKey, password string) (string, error) {
	if len(enc.IV) != ivSize || len(enc.Ciphertext) < macSize+aes.BlockSize {
		return "", ErrDecryptionFailed
	}

	ciphertext := enc.Ciphertext[:len(enc.Ciphertext)-macSize]
	tag := enc.Ciphertext[len(enc.Ciphertext)-macSize:]

	if len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrDecryptionFailed
	}

	encKey, macKey := c.deriveKeys(password, enc.Salt)

	mac := hmac.New(sha256.New, macKey)
	mac.Write(enc.IV)
	mac.Write(ciphertext)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return "", ErrDecryptionFailed
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, enc.IV).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(unpadded), nil
}

// pad applies PKCS#7 padding up to the AES block size.
func pad(data []byte) []byte {
	padLen := aes.BlockSize - len(data)%aes.BlockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// unpad strips PKCS#7 padding, rejecting inconsistent padding bytes.
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > len(data) {
		return nil, ErrDecryptionFailed
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrDecryptionFailed
		}
	}

	return data[:len(data)-padLen], nil
}
