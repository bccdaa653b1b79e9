package decrypt

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-t2decrypt/internal/config"
	"github.com/deploymenttheory/go-t2decrypt/pkg/app"
)

// Validate validates a decryption request
func (r *Request) Validate() error {
	if r.LibraryPath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "library path is required", nil)
	}

	if r.OutputPath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "output path is required", nil)
	}

	if filepath.Clean(r.LibraryPath) == filepath.Clean(r.OutputPath) {
		return app.NewError(app.ErrCodeInvalidInput, "output path must differ from library path", nil)
	}

	layout := []struct{ what, name string }{
		{"container name", r.ContainerName},
		{"bootchains dir", r.BootchainsDir},
		{"companion name", r.CompanionName},
	}
	for _, l := range layout {
		if err := validateLayoutName(l.what, l.name); err != nil {
			return err
		}
	}

	if r.Workers < 1 || r.Workers > config.MaxWorkers {
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("workers must be between 1 and %d", config.MaxWorkers), nil)
	}

	if err := r.Derivation.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid key derivation parameters", err)
	}

	return nil
}

// validateLayoutName requires a single path element
func validateLayoutName(what, name string) error {
	if name == "" {
		return app.NewError(app.ErrCodeInvalidInput, what+" is required", nil)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return app.NewError(app.ErrCodeInvalidInput, what+" must be a plain file name: "+name, nil)
	}
	return nil
}
