package batch

import "fmt"

// Operations reported by FileError.
const (
	OpWalk    = "walk"
	OpOpen    = "open"
	OpReorder = "reorder"
	OpSave    = "save"
)

// FileError is a recovered failure on a single file or directory.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(path, op string, err error) *FileError {
	return &FileError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}
