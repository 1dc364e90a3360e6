package crypto

import "errors"

// ErrDecryptionFailed is returned by [KeyCipher.Decrypt] when the supplied
// password does not reproduce the keys the ciphertext was sealed under, or
// when the stored ciphertext is truncated or tampered with. The caller
// surfaces it as an authentication failure, never as a server fault, and
// never swallows it into a success path.
var ErrDecryptionFailed = errors.New("private key decryption failed")
