package sheetorder

import (
	"errors"
	"fmt"
)

// ErrTargetDirectoryNotFound indicates the configured default target directory does not exist.
var ErrTargetDirectoryNotFound = errors.New("default target directory not found")

// ErrOrderFileNotFound indicates the canonical sheet order file does not exist.
var ErrOrderFileNotFound = errors.New("sheet order file not found")

// Setup stages reported by SetupError.
const (
	StageConfig  = "config"
	StageTargets = "targets"
	StageOrder   = "order"
)

// SetupError represents a fatal error raised before any workbook is touched.
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed (%s): %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// NewSetupError creates a new SetupError.
func NewSetupError(stage string, err error) *SetupError {
	return &SetupError{
		Stage: stage,
		Err:   err,
	}
}
