// File: pkg/crypto/decryption.go
package crypto

import (
	"crypto/aes"
	"fmt"
)

// BlockSize is the AES block size in bytes
const BlockSize = aes.BlockSize

// BlockDecryptor decrypts AES-256-ECB ciphertext and strips its PKCS#7 padding.
// The zero value uses strict padding checks. It holds no state between calls.
type BlockDecryptor struct {
	laxPadding bool
}

// Option configures a BlockDecryptor
type Option func(*BlockDecryptor)

// WithLaxPadding only range-checks the padding length and trusts the rest of
// the final block, as the original container tool did.
func WithLaxPadding() Option {
	return func(d *BlockDecryptor) {
		d.laxPadding = true
	}
}

// NewBlockDecryptor creates a new BlockDecryptor
func NewBlockDecryptor(opts ...Option) BlockDecryptor {
	var d BlockDecryptor
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Decrypt decrypts ciphertext with key. The ciphertext slice is not modified.
//
// Errors:
//   - ErrInvalidKeyLength if key is not KeySize bytes
//   - ErrInvalidCiphertextLength if ciphertext is empty or not a multiple of BlockSize
//   - ErrInvalidPadding if the padding length is 0 or above BlockSize, or, unless
//     lax, if the padding bytes do not all equal the padding length
func (d BlockDecryptor) Decrypt(key SymmetricKey, ciphertext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyLength, KeySize, len(key))
	}

	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d is not a positive multiple of %d", ErrInvalidCiphertextLength, len(ciphertext), BlockSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		// unreachable for a KeySize key
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyLength, err)
	}

	padded := make([]byte, len(ciphertext))
	newECBDecrypter(block).CryptBlocks(padded, ciphertext)

	if d.laxPadding {
		return trimPKCS7(padded, BlockSize)
	}
	return unpadPKCS7(padded, BlockSize)
}

// Decrypt decrypts AES-256-ECB ciphertext with strict padding validation
func Decrypt(key SymmetricKey, ciphertext []byte) ([]byte, error) {
	return BlockDecryptor{}.Decrypt(key, ciphertext)
}
