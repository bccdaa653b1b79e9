package decrypt

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/deploymenttheory/go-t2decrypt/internal/img4"
	"github.com/deploymenttheory/go-t2decrypt/pkg/app"
	"github.com/deploymenttheory/go-t2decrypt/pkg/crypto"
)

// Handle processes a library decryption request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fs := req.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	response := &Response{
		RunID:       uuid.NewString(),
		LibraryPath: req.LibraryPath,
		OutputPath:  req.OutputPath,
	}
	logger := ctx.Logger().With("run_id", response.RunID)

	// 2. Derive the key once for the whole batch
	ctx.Progress("Deriving key...", 5)
	key, err := deriveKey(req)
	if err != nil {
		return nil, err
	}
	logger.Debug("key derived", "iterations", req.Derivation.Iterations, "key_length", len(key))

	// 3. Find encrypted files
	ctx.Progress("Scanning library...", 10)
	jobs, err := Discover(fs, req)
	if err != nil {
		return nil, err
	}
	logger.Info("library scanned", "library", req.LibraryPath, "files", len(jobs))

	// 4. Decrypt concurrently, keeping results in discovery order
	decryptor := newDecryptor(req)
	results := make([]FileResult, len(jobs))
	progress := newProgressTracker(ctx, len(jobs))

	base := ctx.Base()
	g, gctx := errgroup.WithContext(base)
	g.SetLimit(req.Workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := DecryptFile(fs, decryptor, key, job, req.Overwrite)
			results[i] = result
			progress.done(job)

			if err != nil {
				ctx.Error("decryption failed", "run_id", response.RunID, "path", job.SourcePath, "model", job.Model, "error", err)
				if !req.ContinueOnError {
					return err
				}
				return nil
			}

			logger.Debug("decrypted", "path", job.SourcePath, "model", job.Model,
				"bytes", result.DecryptedSize, "format", result.Format, "skipped", result.Skipped)
			if !result.Skipped && !result.Format.Recognized() {
				logger.Warn("unrecognized payload", "path", job.SourcePath, "model", job.Model)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := base.Err(); ctxErr != nil {
			return nil, app.NewError(app.ErrCodeCancelled, "decryption cancelled", ctxErr)
		}
		return nil, err
	}

	// 5. Summarize
	response.Files = results
	for _, r := range results {
		switch r.Status() {
		case "failed":
			response.Failed++
		case "skipped":
			response.Skipped++
		default:
			response.Succeeded++
		}
	}
	response.Duration = time.Since(startTime)

	ctx.Progress("Complete", 100)
	logger.Info("decryption finished", "succeeded", response.Succeeded, "failed", response.Failed,
		"skipped", response.Skipped, "duration", response.Duration)

	return response, nil
}

// DecryptFile decrypts one job's source into its output path. The returned
// result is populated even on error so callers can record the failure.
func DecryptFile(fs afero.Fs, decryptor crypto.BlockDecryptor, key crypto.SymmetricKey, job Job, overwrite bool) (FileResult, error) {
	result := FileResult{
		Kind:       job.Kind,
		Model:      job.Model,
		SourcePath: job.SourcePath,
		OutputPath: job.OutputPath,
	}

	if !overwrite && outputExists(fs, job.OutputPath) {
		result.Skipped = true
		return result, nil
	}

	ciphertext, err := afero.ReadFile(fs, job.SourcePath)
	if err != nil {
		return failed(result, app.NewError(app.ErrCodeFileAccess, "failed to read "+job.SourcePath, err))
	}
	result.EncryptedSize = int64(len(ciphertext))

	plaintext, err := decryptor.Decrypt(key, ciphertext)
	if err != nil {
		msg := "failed to decrypt " + job.SourcePath
		if errors.Is(err, crypto.ErrInvalidPadding) {
			msg += " (wrong key or corrupt file)"
		}
		return failed(result, app.NewError(app.ErrCodeDecryption, msg, err))
	}
	result.DecryptedSize = int64(len(plaintext))
	result.Format = img4.Detect(plaintext)

	if job.OutputPath == "" {
		return result, nil
	}

	if err := fs.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return failed(result, app.NewError(app.ErrCodeFileAccess, "failed to create output directory", err))
	}
	if err := afero.WriteFile(fs, job.OutputPath, plaintext, 0o644); err != nil {
		return failed(result, app.NewError(app.ErrCodeFileAccess, "failed to write "+job.OutputPath, err))
	}

	return result, nil
}

func failed(result FileResult, err error) (FileResult, error) {
	result.Error = err.Error()
	return result, err
}

func deriveKey(req *Request) (crypto.SymmetricKey, error) {
	deriver := req.Deriver
	if deriver == nil {
		deriver = crypto.NewPBKDF2SHA1Deriver()
	}

	key, err := deriver.DeriveKey(req.Derivation)
	if err != nil {
		return nil, app.NewError(app.ErrCodeKeyDerivation, "failed to derive key", err)
	}
	if len(key) != crypto.KeySize {
		return nil, app.NewError(app.ErrCodeKeyDerivation,
			fmt.Sprintf("derived key is %d bytes, need %d", len(key), crypto.KeySize), crypto.ErrInvalidKeyLength)
	}
	return key, nil
}

func newDecryptor(req *Request) crypto.BlockDecryptor {
	if req.LaxPadding {
		return crypto.NewBlockDecryptor(crypto.WithLaxPadding())
	}
	return crypto.NewBlockDecryptor()
}

// progressTracker serializes progress callbacks from the worker pool
type progressTracker struct {
	mu     sync.Mutex
	ctx    *app.Context
	update app.ProgressUpdate
}

func newProgressTracker(ctx *app.Context, total int) *progressTracker {
	return &progressTracker{
		ctx: ctx,
		update: app.ProgressUpdate{
			Total:     int64(total),
			StartedAt: time.Now(),
		},
	}
}

func (p *progressTracker) done(job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.update.Completed++
	p.update.ElapsedTime = time.Since(p.update.StartedAt)
	p.update.Message = fmt.Sprintf("Decrypted %s (%d/%d, %.1f files/s, ETA %v)",
		job.SourcePath, p.update.Completed, p.update.Total, p.update.Rate(), p.update.ETA().Round(time.Second))

	// scale into the 10-95 band left between scanning and completion
	percent := 10 + p.update.Percent()*85/100
	p.ctx.Progress(p.update.Message, percent)
}
