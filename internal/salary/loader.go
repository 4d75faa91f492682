// Package salary loads instructor salary data and answers name lookups
// with the same normalization cascade the course search uses.
package salary

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rusoc/rusoc-go/internal/storage"
)

// Load reads salary records from the CSV path if it exists, otherwise
// from the JSON path. A missing pair of files is an empty success; the
// salary endpoint just reports not-found until data is provided.
func Load(csvPath, jsonPath string) ([]storage.SalaryRecord, error) {
	if csvPath != "" {
		if _, err := os.Stat(csvPath); err == nil {
			return LoadCSV(csvPath)
		}
	}
	if jsonPath != "" {
		if _, err := os.Stat(jsonPath); err == nil {
			return LoadJSON(jsonPath)
		}
	}
	return nil, nil
}

// LoadCSV reads header-keyed salary rows. Header names and values are
// trimmed; short rows fill missing columns with empty strings.
func LoadCSV(path string) ([]storage.SalaryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open salary CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read salary CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []storage.SalaryRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read salary CSV row: %w", err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[col] = strings.TrimSpace(row[i])
			}
		}

		records = append(records, storage.SalaryRecord{
			Name:       fields["Name"],
			Title:      fields["Title"],
			Department: fields["Department"],
			Campus:     fields["Campus"],
			BasePay:    fields["Base Pay"],
			GrossPay:   fields["Gross Pay"],
			HireDate:   fields["Hire Date"],
		})
	}

	return records, nil
}

// LoadJSON reads an array of salary objects keyed like the CSV columns.
func LoadJSON(path string) ([]storage.SalaryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read salary JSON: %w", err)
	}

	var records []storage.SalaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse salary JSON: %w", err)
	}
	return records, nil
}
