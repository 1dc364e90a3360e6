// Package keys generates the secp256k1 wallet keypairs whose custody this
// subsystem is responsible for. The private key exists in plaintext only in
// the moment between generation and encryption; callers must encrypt it
// immediately and never persist it unwrapped.
package keys

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip39"
)

// KeyPair holds a freshly generated secp256k1 keypair in hex form:
// a 32-byte private scalar and the 33-byte compressed public point.
type KeyPair struct {
	PrivateKey string
	PublicKey  string
}

// ErrInvalidPrivateKey is returned when a supplied private key is not a
// valid 32-byte secp256k1 scalar.
var ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")

// Generate produces a new secp256k1 keypair from the OS CSPRNG.
//
// A randomness failure here is not recoverable: the caller must treat it as
// fatal for the operation in flight rather than degrade to weaker key
// material.
func Generate() (KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return KeyPair{}, fmt.Errorf("generating secp256k1 private key: %w", err)
	}

	return KeyPair{
		PrivateKey: hex.EncodeToString(priv.Serialize()),
		PublicKey:  hex.EncodeToString(priv.PubKey().SerializeCompressed()),
	}, nil
}

// Mnemonic encodes the given hex private key as a 24-word BIP-39 recovery
// phrase. The phrase is handed to the user exactly once at registration as
// an offline backup of the wallet key; the server never stores it.
func Mnemonic(privateKeyHex string) (string, error) {
	entropy, err := hex.DecodeString(privateKeyHex)
	if err != nil || len(entropy) != 32 {
		return "", ErrInvalidPrivateKey
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encoding private key as mnemonic: %w", err)
	}

	return mnemonic, nil
}

// FromMnemonic reconstructs the keypair backed up by a 24-word recovery
// phrase produced by [Mnemonic].
func FromMnemonic(mnemonic string) (KeyPair, error) {
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return KeyPair{}, fmt.Errorf("decoding mnemonic: %w", err)
	}
	if len(entropy) != 32 {
		return KeyPair{}, ErrInvalidPrivateKey
	}

	priv := secp256k1.PrivKeyFromBytes(entropy)

	return KeyPair{
		PrivateKey: hex.EncodeToString(priv.Serialize()),
		PublicKey:  hex.EncodeToString(priv.PubKey().SerializeCompressed()),
	}, nil
}

// ParsePublicKey decodes and validates a hex compressed secp256k1 public
// key, rejecting points that are not on the curve.
func ParsePublicKey(publicKeyHex string) (*secp256k1.PublicKey, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding public key hex: %w", err)
	}

	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}

	return pub, nil
}

// PublicKeyFor derives the compressed public key for a hex private key.
// Used by credential rotation to sanity-check recovered key material before
// re-encrypting it.
func PublicKeyFor(privateKeyHex string) (string, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil || len(raw) != 32 {
		return "", ErrInvalidPrivateKey
	}

	priv := secp256k1.PrivKeyFromBytes(raw)
	return hex.EncodeToString(priv.PubKey().SerializeCompressed()), nil
}
