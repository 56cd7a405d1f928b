package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a filled-form batch from CSV input. The first record is the
// header; column names are matched case-insensitively with spaces and dashes
// folded to underscores. An unreadable header or record is batch-fatal.
func ParseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// A short record is a per-row validation problem, not a batch-fatal one.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &BatchError{Message: "empty input"}
	}
	if err != nil {
		return nil, &BatchError{Message: "unreadable CSV header", Cause: err}
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = normalizeColumn(name)
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &BatchError{
				Message: fmt.Sprintf("unreadable CSV record %d", len(rows)+2),
				Cause:   err,
			}
		}

		row := make(RawRow, len(columns))
		for i, value := range record {
			if i < len(columns) && columns[i] != "" {
				row[columns[i]] = value
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &BatchError{Message: "no data rows"}
	}

	return rows, nil
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
