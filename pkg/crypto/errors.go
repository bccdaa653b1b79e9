// File: pkg/crypto/errors.go
package crypto

import "errors"

// Error kinds returned by this package. Every error returned wraps exactly one
// of these, so callers can tell them apart with errors.Is.
var (
	// ErrInvalidParameters is returned for malformed key derivation inputs
	ErrInvalidParameters = errors.New("invalid derivation parameters")

	// ErrInvalidKeyLength is returned when a key is not KeySize bytes
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidCiphertextLength is returned when ciphertext is empty or not block aligned
	ErrInvalidCiphertextLength = errors.New("invalid ciphertext length")

	// ErrInvalidPadding is returned when the trailing PKCS#7 padding is malformed.
	// Decrypting with the wrong key usually ends up here.
	ErrInvalidPadding = errors.New("invalid padding")
)
