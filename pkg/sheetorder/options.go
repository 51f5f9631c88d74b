// Package sheetorder normalizes the tab order of worksheets across a tree of workbooks.
package sheetorder

import (
	"io"
	"log/slog"
)

// Options configures a run.
type Options struct {
	// ProjectRoot anchors every relative path in the configuration.
	// If empty, the current working directory is used.
	ProjectRoot string
	// Workers is the number of workbooks processed concurrently.
	// If zero, runtime.NumCPU() is used.
	Workers int
	// DryRun plans every workbook without saving any of them.
	DryRun bool
	// Logger receives progress and per-file diagnostics.
	// If nil, logs are discarded.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
