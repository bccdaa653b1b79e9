package decrypt

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-t2decrypt/pkg/app"
	"github.com/deploymenttheory/go-t2decrypt/pkg/crypto"
)

// InspectRequest decrypts a single file outside of a library layout
type InspectRequest struct {
	Path       string
	OutputPath string // optional; plaintext is discarded when empty
	Derivation crypto.DerivationParameters
	LaxPadding bool
	Fs         afero.Fs
	Deriver    crypto.KeyDeriver
}

// Inspect decrypts one file and reports its size and IMG4 format
func Inspect(ctx *app.Context, req *InspectRequest) (*FileResult, error) {
	if req.Path == "" {
		return nil, app.NewError(app.ErrCodeInvalidInput, "file path is required", nil)
	}
	if req.OutputPath != "" && filepath.Clean(req.OutputPath) == filepath.Clean(req.Path) {
		return nil, app.NewError(app.ErrCodeInvalidInput, "output path must differ from input path", nil)
	}
	if err := req.Derivation.Validate(); err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid key derivation parameters", err)
	}

	fs := req.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	key, err := deriveKey(&Request{Derivation: req.Derivation, Deriver: req.Deriver})
	if err != nil {
		return nil, err
	}

	decryptor := crypto.NewBlockDecryptor()
	if req.LaxPadding {
		decryptor = crypto.NewBlockDecryptor(crypto.WithLaxPadding())
	}

	job := Job{Kind: FileKindContainer, SourcePath: req.Path, OutputPath: req.OutputPath}
	result, err := DecryptFile(fs, decryptor, key, job, true)
	if err != nil {
		return nil, err
	}

	ctx.Log("inspected", "path", req.Path, "bytes", result.DecryptedSize, "format", result.Format)
	if !result.Format.Recognized() {
		ctx.Logger().Warn("unrecognized payload", "path", req.Path)
	}
	return &result, nil
}
