package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpadPKCS7(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    []byte
		wantErr bool
	}{
		{"empty", []byte{}, nil, true},
		{"one byte pad", []byte{'a', 'b', 0x01}, []byte{'a', 'b'}, false},
		{"three byte pad", []byte{'a', 0x03, 0x03, 0x03}, []byte{'a'}, false},
		{"pad longer than data", []byte{0x05, 0x05}, nil, true},
		{"mismatched pad byte", []byte{'a', 0x01, 0x03, 0x03}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unpadPKCS7(tt.data, 16)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPadding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimPKCS7(t *testing.T) {
	got, err := trimPKCS7([]byte{'a', 0x01, 0x07, 0x03}, 16)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a'}, got)

	_, err = trimPKCS7([]byte{'a', 0x00}, 16)
	assert.ErrorIs(t, err, ErrInvalidPadding)
}

func TestPadPKCS7_FullBlockWhenAligned(t *testing.T) {
	padded := padPKCS7(make([]byte, 16), 16)
	assert.Len(t, padded, 32)
	assert.Equal(t, byte(16), padded[31])
}
