// internal/dataset/csv.go
package dataset

import (
    "encoding/csv"
    "fmt"
    "os"
    "strings"

    "github.com/unclebandit/automailer-backend/internal/model"
)

// Load reads a CSV file into a Dataset. The first record is the header and
// becomes the ordered column list. Empty cells are stored as nil so they
// render as empty strings. Errors surface to the caller before any run
// starts.
func Load(path string) (*model.Dataset, error) {
    f, err := os.Open(path)
    if err != nil {
        return nil, fmt.Errorf("failed to load file: %w", err)
    }
    defer f.Close()

    reader := csv.NewReader(f)
    records, err := reader.ReadAll()
    if err != nil {
        return nil, fmt.Errorf("failed to load file: %w", err)
    }
    if len(records) == 0 {
        return nil, fmt.Errorf("file %s has no header row", path)
    }

    columns := make([]string, len(records[0]))
    for i, c := range records[0] {
        columns[i] = strings.TrimSpace(c)
    }

    rows := make([]model.Row, 0, len(records)-1)
    for _, record := range records[1:] {
        row := make(model.Row, len(columns))
        for i, col := range columns {
            if i >= len(record) || record[i] == "" {
                row[col] = nil
                continue
            }
            row[col] = record[i]
        }
        rows = append(rows, row)
    }

    return &model.Dataset{Columns: columns, Rows: rows}, nil
}
