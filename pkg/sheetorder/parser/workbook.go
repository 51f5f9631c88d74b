package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open spreadsheet whose sheet order can be changed and saved in place.
type Workbook struct {
	path string
	f    *excelize.File
}

// OpenWorkbook opens the workbook at path for reading and writing.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Workbook{path: path, f: f}, nil
}

// SheetNames returns the sheet names in tab order, left to right.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Reorder moves sheets so the tab order equals order, placing each name in turn.
// order must be a permutation of the current sheet names.
func (w *Workbook) Reorder(order []string) error {
	current := w.f.GetSheetList()
	if len(order) != len(current) {
		return fmt.Errorf("reorder: workbook has %d sheets, target order has %d", len(current), len(order))
	}

	for i, name := range order {
		current = w.f.GetSheetList()
		if current[i] == name {
			continue
		}
		// MoveSheet inserts the source before the target sheet, i.e. at position i.
		if err := w.f.MoveSheet(name, current[i]); err != nil {
			return fmt.Errorf("move sheet %q to position %d: %w", name, i, err)
		}
	}
	return nil
}

// Save writes the workbook back to its path through a temporary file in the
// same directory, so a failed write never leaves a truncated workbook behind.
func (w *Workbook) Save() error {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".sheetorder-tmp-*"+filepath.Ext(w.path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// After a successful rename tmpName no longer exists and both calls are no-ops.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := w.f.Write(tmp); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, err := os.Stat(w.path); err == nil {
		_ = os.Chmod(tmpName, info.Mode().Perm())
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Close releases the workbook's resources without saving.
func (w *Workbook) Close() error {
	return w.f.Close()
}
