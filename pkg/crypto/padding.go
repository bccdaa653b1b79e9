// File: pkg/crypto/padding.go
package crypto

import "fmt"

// paddingLength reads and range-checks the PKCS#7 padding length
func paddingLength(data []byte, blockSize int) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty data", ErrInvalidPadding)
	}

	padLength := int(data[len(data)-1])
	if padLength == 0 || padLength > blockSize || padLength > len(data) {
		return 0, fmt.Errorf("%w: padding length %d out of range 1-%d", ErrInvalidPadding, padLength, blockSize)
	}

	return padLength, nil
}

// unpadPKCS7 removes PKCS#7 padding after verifying every padding byte
func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	padLength, err := paddingLength(data, blockSize)
	if err != nil {
		return nil, err
	}

	length := len(data)
	for i := length - padLength; i < length; i++ {
		if data[i] != byte(padLength) {
			return nil, fmt.Errorf("%w: byte %d is 0x%02x, expected 0x%02x", ErrInvalidPadding, i, data[i], padLength)
		}
	}

	return data[:length-padLength], nil
}

// trimPKCS7 removes padding using only the final byte
func trimPKCS7(data []byte, blockSize int) ([]byte, error) {
	padLength, err := paddingLength(data, blockSize)
	if err != nil {
		return nil, err
	}

	return data[:len(data)-padLength], nil
}
