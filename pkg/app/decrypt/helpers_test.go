package decrypt

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-t2decrypt/pkg/crypto"
)

const (
	testLibrary = "/res/LIBRARY"
	testOutput  = "/out/Decrypted"
)

// testParams keeps the iteration count low so tests stay fast
func testParams() crypto.DerivationParameters {
	return crypto.DerivationParameters{
		Passphrase: []byte("T2BOYSSNCHANGER"),
		Salt:       []byte("ECEJWQXAIFQGCI"),
		Iterations: 10,
		KeyLength:  crypto.KeySize,
	}
}

func testKey(t *testing.T) crypto.SymmetricKey {
	t.Helper()
	key, err := crypto.DeriveKey(testParams())
	require.NoError(t, err)
	return key
}

// encryptBlocks encrypts block-aligned data in ECB mode
func encryptBlocks(t *testing.T, key, data []byte) []byte {
	t.Helper()
	require.Zero(t, len(data)%aes.BlockSize)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		block.Encrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}
	return out
}

// encryptContainer pads and encrypts plaintext the way the library files were built
func encryptContainer(t *testing.T, key, plaintext []byte) []byte {
	t.Helper()
	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append(append([]byte{}, plaintext...), bytes.Repeat([]byte{byte(pad)}, pad)...)
	return encryptBlocks(t, key, padded)
}

var (
	bootPlain = append([]byte{0x30, 0x83, 0x00, 0x10, 0x00, 0x16, 0x04}, []byte("IMG4 boot payload")...)
	j132Plain = append([]byte{0x00, 0x00}, []byte("IM4P diags for J132")...)
	j680Plain = []byte("diags payload without markers, J680")
)

// newTestLibrary builds a library on an in-memory filesystem:
//
//	/res/LIBRARY/boot.img4
//	/res/LIBRARY/bootchains/J680/diags
//	/res/LIBRARY/bootchains/J132/diags
//	/res/LIBRARY/bootchains/J999/        (no diags)
//	/res/LIBRARY/bootchains/README       (not a directory)
func newTestLibrary(t *testing.T) afero.Fs {
	t.Helper()
	key := testKey(t)
	fs := afero.NewMemMapFs()

	write := func(path string, data []byte) {
		require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
	}

	require.NoError(t, fs.MkdirAll(testLibrary+"/bootchains/J999", 0o755))
	write(testLibrary+"/boot.img4", encryptContainer(t, key, bootPlain))
	write(testLibrary+"/bootchains/J680/diags", encryptContainer(t, key, j680Plain))
	write(testLibrary+"/bootchains/J132/diags", encryptContainer(t, key, j132Plain))
	write(testLibrary+"/bootchains/README", []byte("not a model"))

	return fs
}

func newTestRequest(fs afero.Fs) *Request {
	return &Request{
		LibraryPath:   testLibrary,
		OutputPath:    testOutput,
		ContainerName: "boot.img4",
		BootchainsDir: "bootchains",
		CompanionName: "diags",
		Derivation:    testParams(),
		Workers:       2,
		Overwrite:     true,
		Fs:            fs,
	}
}

// fixedDeriver returns a preset key
type fixedDeriver struct {
	key crypto.SymmetricKey
	err error
}

func (d fixedDeriver) DeriveKey(crypto.DerivationParameters) (crypto.SymmetricKey, error) {
	return d.key, d.err
}
