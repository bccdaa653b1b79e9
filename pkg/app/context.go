package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Common timeouts
	DefaultTimeout time.Duration

	// Slog receives structured diagnostics; see ConfigureLogger
	Slog *slog.Logger

	// Progress reporting
	ProgressCallback func(message string, percent int)
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:        context.Background(),
		DefaultTimeout: 5 * time.Minute,
		Slog:           discardLogger(),
	}
}

// ConfigureLogger points the logger at w with a level matching the
// verbosity flags. Quiet discards everything below error.
func (c *Context) ConfigureLogger(w io.Writer) {
	level := slog.LevelInfo
	switch {
	case c.Quiet:
		level = slog.LevelError
	case c.Verbose:
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}
	c.Slog = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the configured logger, or one that discards everything
func (c *Context) Logger() *slog.Logger {
	if c.Slog == nil {
		return discardLogger()
	}
	return c.Slog
}

// Base returns the embedded context, or context.Background when unset
func (c *Context) Base() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithTimeout creates a context with timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Base(), timeout)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Base())
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// Log emits a debug message with optional key/value attributes
func (c *Context) Log(message string, args ...any) {
	c.Logger().Debug(message, args...)
}

// Error emits an error message with optional key/value attributes
func (c *Context) Error(message string, args ...any) {
	c.Logger().Error(message, args...)
}
