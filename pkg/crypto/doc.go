// File: pkg/crypto/doc.go

// Package crypto provides the key derivation and block decryption used to
// recover T2 firmware containers (boot.img4 and per-model diags files).
//
// The containers were encrypted with AES-256 in ECB mode under a key derived
// from a fixed passphrase and salt:
//
// 1. The passphrase and salt are stretched with PBKDF2-HMAC-SHA1 into a 32-byte key
// 2. Each 16-byte ciphertext block is decrypted independently (no IV, no chaining)
// 3. PKCS#7 padding is removed from the final block
//
// ECB leaks equal plaintext blocks as equal ciphertext blocks. It is kept here
// only because the containers were produced that way.
//
// Basic usage:
//
//	key, err := crypto.DeriveKey(crypto.DerivationParameters{
//		Passphrase: []byte("T2BOYSSNCHANGER"),
//		Salt:       []byte("ECEJWQXAIFQGCI"),
//		Iterations: 10000,
//		KeyLength:  crypto.KeySize,
//	})
//	if err != nil {
//		return err
//	}
//
//	plaintext, err := crypto.Decrypt(key, ciphertext)
//	if errors.Is(err, crypto.ErrInvalidPadding) {
//		// most likely the wrong key
//	}
//
// All functions are pure and safe for concurrent use; a SymmetricKey may be
// shared read-only between goroutines.
package crypto
