package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newTestWorkbook saves a workbook whose sheets are named in order and returns its path.
func newTestWorkbook(t *testing.T, dir string, sheets ...string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheets[0]); err != nil {
		t.Fatalf("Failed to rename first sheet: %v", err)
	}
	for _, name := range sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("Failed to add sheet %s: %v", name, err)
		}
	}
	for _, name := range sheets {
		if err := f.SetCellValue(name, "A1", "sheet "+name); err != nil {
			t.Fatalf("Failed to set cell on %s: %v", name, err)
		}
	}

	path := filepath.Join(dir, "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestWorkbookReorderAndSave(t *testing.T) {
	path := newTestWorkbook(t, t.TempDir(), "Detail", "Extra", "Summary", "Notes")

	wb, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}

	before := wb.SheetNames()
	if !reflect.DeepEqual(before, []string{"Detail", "Extra", "Summary", "Notes"}) {
		t.Fatalf("Unexpected initial order: %v", before)
	}

	target := []string{"Summary", "Detail", "Extra", "Notes"}
	if err := wb.Reorder(target); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if got := wb.SheetNames(); !reflect.DeepEqual(got, target) {
		t.Errorf("In-memory order = %v, expected %v", got, target)
	}
	if err := wb.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen and check both order and contents survived.
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to reopen: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, target) {
		t.Errorf("Saved order = %v, expected %v", got, target)
	}
	for _, name := range target {
		v, err := f.GetCellValue(name, "A1")
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", name, err)
		}
		if v != "sheet "+name {
			t.Errorf("Sheet %s content = %q, expected %q", name, v, "sheet "+name)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the workbook in the directory, found %d entries", len(entries))
	}
}

func TestWorkbookReorderLengthMismatch(t *testing.T) {
	path := newTestWorkbook(t, t.TempDir(), "A", "B")

	wb, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	if err := wb.Reorder([]string{"A"}); err == nil {
		t.Error("Expected error for target order of wrong length")
	}
}

func TestOpenWorkbookCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a zip container"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := OpenWorkbook(path); err == nil {
		t.Error("Expected error opening corrupt workbook")
	}
}
