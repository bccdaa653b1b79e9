// File: pkg/crypto/key_derivation.go
package crypto

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AES-256 key size in bytes
	KeySize = 32

	// DefaultIterations is the PBKDF2 round count the containers were built with
	DefaultIterations = 10000
)

// DerivationParameters holds the inputs to key derivation
type DerivationParameters struct {
	Passphrase []byte
	Salt       []byte
	Iterations int
	KeyLength  int // output length in bytes
}

// Validate checks that every derivation input is usable
func (p DerivationParameters) Validate() error {
	if len(p.Passphrase) == 0 {
		return fmt.Errorf("%w: passphrase cannot be empty", ErrInvalidParameters)
	}

	if len(p.Salt) == 0 {
		return fmt.Errorf("%w: salt cannot be empty", ErrInvalidParameters)
	}

	if p.Iterations <= 0 {
		return fmt.Errorf("%w: iteration count must be positive, got %d", ErrInvalidParameters, p.Iterations)
	}

	if p.KeyLength <= 0 {
		return fmt.Errorf("%w: key length must be positive, got %d", ErrInvalidParameters, p.KeyLength)
	}

	return nil
}

// SymmetricKey is derived key material. Treat it as read-only once created.
type SymmetricKey []byte

// Hex returns the key as a lowercase hex string
func (k SymmetricKey) Hex() string {
	return hex.EncodeToString(k)
}

// KeyDeriver derives a symmetric key from derivation parameters.
// The same parameters must always produce the same key.
type KeyDeriver interface {
	DeriveKey(params DerivationParameters) (SymmetricKey, error)
}

// PBKDF2SHA1Deriver implements KeyDeriver with PBKDF2 using HMAC-SHA1 as PRF
type PBKDF2SHA1Deriver struct{}

// NewPBKDF2SHA1Deriver creates a new PBKDF2-HMAC-SHA1 key deriver
func NewPBKDF2SHA1Deriver() *PBKDF2SHA1Deriver {
	return &PBKDF2SHA1Deriver{}
}

// DeriveKey stretches the passphrase and salt into params.KeyLength bytes.
// Invalid parameters fail with ErrInvalidParameters and no key material.
func (d *PBKDF2SHA1Deriver) DeriveKey(params DerivationParameters) (SymmetricKey, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key := pbkdf2.Key(params.Passphrase, params.Salt, params.Iterations, params.KeyLength, sha1.New)
	return SymmetricKey(key), nil
}

// DeriveKey derives a key with PBKDF2-HMAC-SHA1
func DeriveKey(params DerivationParameters) (SymmetricKey, error) {
	return NewPBKDF2SHA1Deriver().DeriveKey(params)
}
