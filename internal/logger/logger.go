// Package logger sets up the structured log written by every command.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/hypnos/internal/osutil"
)

// Options configures the log.
type Options struct {
	// Stderr also receives the log when set
	Stderr    io.Writer
	Path      string
	Level     string
	MaxSizeMB int
}

// New returns a JSON logger writing to a rotated file. The returned closer
// flushes and closes the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), osutil.DirPermission); err != nil {
		return nil, nil, err
	}

	file := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: 3,
		Compress:   true,
	}

	var w io.Writer = file
	if opts.Stderr != nil {
		w = io.MultiWriter(file, opts.Stderr)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler), file, nil
}
