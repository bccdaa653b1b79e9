package decrypt

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-t2decrypt/pkg/app"
)

// Discover lists the encrypted files in a library, container first and then
// one companion per model directory in name order. Missing container or
// bootchains directory yields fewer jobs, not an error.
func Discover(fs afero.Fs, req *Request) ([]Job, error) {
	info, err := fs.Stat(req.LibraryPath)
	if err != nil {
		return nil, app.NewError(app.ErrCodeFileAccess, "cannot access library", err)
	}
	if !info.IsDir() {
		return nil, app.NewError(app.ErrCodeFileAccess, "library path is not a directory: "+req.LibraryPath, nil)
	}

	var jobs []Job

	container := filepath.Join(req.LibraryPath, req.ContainerName)
	if isRegular(fs, container) {
		jobs = append(jobs, Job{
			Kind:       FileKindContainer,
			SourcePath: container,
			OutputPath: filepath.Join(req.OutputPath, req.ContainerName),
		})
	}

	bootchains := filepath.Join(req.LibraryPath, req.BootchainsDir)
	if ok, _ := afero.DirExists(fs, bootchains); !ok {
		return jobs, nil
	}

	// ReadDir returns entries sorted by name
	entries, err := afero.ReadDir(fs, bootchains)
	if err != nil {
		return nil, app.NewError(app.ErrCodeFileAccess, "cannot list bootchains", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		companion := filepath.Join(bootchains, entry.Name(), req.CompanionName)
		if !isRegular(fs, companion) {
			continue
		}
		jobs = append(jobs, Job{
			Kind:       FileKindCompanion,
			Model:      entry.Name(),
			SourcePath: companion,
			OutputPath: filepath.Join(req.OutputPath, req.BootchainsDir, entry.Name(), req.CompanionName),
		})
	}

	return jobs, nil
}

func isRegular(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// outputExists reports whether path is already present
func outputExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
