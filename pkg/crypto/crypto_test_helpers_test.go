package crypto

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/require"
)

// padPKCS7 adds PKCS#7 padding to data
func padPKCS7(data []byte, blockSize int) []byte {
	padding := blockSize - (len(data) % blockSize)
	padText := bytes.Repeat([]byte{byte(padding)}, padding)
	out := make([]byte, 0, len(data)+padding)
	out = append(out, data...)
	return append(out, padText...)
}

// encryptECBRaw encrypts already block-aligned data in ECB mode
func encryptECBRaw(t *testing.T, key, data []byte) []byte {
	t.Helper()

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	require.Zero(t, len(data)%aes.BlockSize, "test data must be block aligned")

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		block.Encrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}
	return out
}

// encryptECB pads and encrypts plaintext the way the containers were produced
func encryptECB(t *testing.T, key, plaintext []byte) []byte {
	t.Helper()
	return encryptECBRaw(t, key, padPKCS7(plaintext, aes.BlockSize))
}

// testKey returns a fixed 32-byte key
func testKey() SymmetricKey {
	key := make(SymmetricKey, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}
