// backend-go/internal/dataset/table.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a raw delimited table: the header row plus string records. The
// validator reasons about column presence on this form before anything is
// decoded into typed rows.
type Table struct {
	Columns []string
	Records [][]string
}

// Load reads a CSV file into a Table. A header row is required.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// FromReader parses CSV content into a Table.
func FromReader(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		records = append(records, record)
	}

	return &Table{Columns: header, Records: records}, nil
}

// ColumnIndex returns the position of the named column, matching loosely on
// case, spacing and separators, or -1 when absent.
func (t *Table) ColumnIndex(names ...string) int {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalizeColumnName(name)] = struct{}{}
	}
	for i, c := range t.Columns {
		if _, ok := targets[normalizeColumnName(c)]; ok {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// MissingColumns returns, in the given order, the required columns that the
// table does not carry.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Field returns the trimmed cell at (record, column index), or "" when the
// index is out of range for that record.
func (t *Table) Field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}
