package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unclebandit/automailer-backend/internal/dataset"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipients.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsColumnAndRowOrder(t *testing.T) {
	path := writeCSV(t, "email,name,balance\na@x.com,Ann,100\nb@x.com,Bob,200\n")

	ds, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCols := []string{"email", "name", "balance"}
	for i, c := range wantCols {
		if ds.Columns[i] != c {
			t.Errorf("column %d: expected %q, got %q", i, c, ds.Columns[i])
		}
	}

	if len(ds.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds.Rows))
	}
	if ds.Rows[0]["email"] != "a@x.com" || ds.Rows[1]["email"] != "b@x.com" {
		t.Errorf("row order not preserved: %v", ds.Rows)
	}
}

func TestLoadEmptyCellsAreAbsent(t *testing.T) {
	path := writeCSV(t, "email,name\na@x.com,\n")

	ds, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Rows[0]["name"] != nil {
		t.Errorf("expected empty cell to load as nil, got %v", ds.Rows[0]["name"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := dataset.Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeCSV(t, "email,name\n\"unterminated\n")
	if _, err := dataset.Load(path); err == nil {
		t.Fatal("expected an error for a malformed file")
	}
}

func TestHasColumn(t *testing.T) {
	path := writeCSV(t, "email,name\na@x.com,Ann\n")
	ds, err := dataset.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !ds.HasColumn("email") {
		t.Error("expected email column to be found")
	}
	if ds.HasColumn("phone") {
		t.Error("phone column must not be found")
	}
}
