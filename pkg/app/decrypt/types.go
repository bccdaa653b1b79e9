package decrypt

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-t2decrypt/internal/img4"
	"github.com/deploymenttheory/go-t2decrypt/pkg/crypto"
)

// Request represents a library decryption request
type Request struct {
	LibraryPath string
	OutputPath  string

	// Library layout
	ContainerName string
	BootchainsDir string
	CompanionName string

	Derivation crypto.DerivationParameters

	// Batch behaviour
	Workers         int
	ContinueOnError bool
	LaxPadding      bool
	Overwrite       bool

	// Fs defaults to the OS filesystem
	Fs afero.Fs

	// Deriver defaults to PBKDF2-HMAC-SHA1
	Deriver crypto.KeyDeriver
}

// Response represents the outcome of a batch
type Response struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	LibraryPath string        `json:"library_path" yaml:"library_path"`
	OutputPath  string        `json:"output_path" yaml:"output_path"`
	Files       []FileResult  `json:"files" yaml:"files"`
	Succeeded   int           `json:"succeeded" yaml:"succeeded"`
	Failed      int           `json:"failed" yaml:"failed"`
	Skipped     int           `json:"skipped" yaml:"skipped"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

// FileKind distinguishes the container from per-model companions
type FileKind string

const (
	FileKindContainer FileKind = "container"
	FileKindCompanion FileKind = "companion"
)

// Job is one encrypted file and where its plaintext goes
type Job struct {
	Kind       FileKind
	Model      string // empty for the container
	SourcePath string
	OutputPath string
}

// FileResult represents the result of decrypting one file
type FileResult struct {
	Kind          FileKind    `json:"kind" yaml:"kind"`
	Model         string      `json:"model,omitempty" yaml:"model,omitempty"`
	SourcePath    string      `json:"source_path" yaml:"source_path"`
	OutputPath    string      `json:"output_path" yaml:"output_path"`
	EncryptedSize int64       `json:"encrypted_size" yaml:"encrypted_size"`
	DecryptedSize int64       `json:"decrypted_size" yaml:"decrypted_size"`
	Format        img4.Format `json:"format,omitempty" yaml:"format,omitempty"`
	Skipped       bool        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error         string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Status returns a short status label for tables
func (f *FileResult) Status() string {
	switch {
	case f.Error != "":
		return "failed"
	case f.Skipped:
		return "skipped"
	default:
		return "ok"
	}
}

// Name returns the display name of the file
func (f *FileResult) Name() string {
	if f.Model != "" {
		return f.Model
	}
	return string(f.Kind)
}

// FormatSize returns a human-readable decrypted size
func (f *FileResult) FormatSize() string {
	return formatBytes(f.DecryptedSize)
}

// formatBytes formats byte count as human readable
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
