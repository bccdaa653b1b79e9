// File: pkg/crypto/ecb.go
package crypto

import "crypto/cipher"

// ecb runs a block cipher over each block independently
type ecb struct {
	b         cipher.Block
	blockSize int
}

type ecbDecrypter ecb

// newECBDecrypter returns a BlockMode that decrypts in electronic codebook mode
func newECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecbDecrypter{b: b, blockSize: b.BlockSize()}
}

func (d *ecbDecrypter) BlockSize() int {
	return d.blockSize
}

func (d *ecbDecrypter) CryptBlocks(dst, src []byte) {
	if len(src)%d.blockSize != 0 {
		panic("crypto: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("crypto: output smaller than input")
	}
	for len(src) > 0 {
		d.b.Decrypt(dst[:d.blockSize], src[:d.blockSize])
		src = src[d.blockSize:]
		dst = dst[d.blockSize:]
	}
}
