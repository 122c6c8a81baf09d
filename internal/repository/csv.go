package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/validation"
)

// CSVRepository reads fundamentals from a delimited file with a header
// row. Every cell is read as a string; typing happens in the validator.
type CSVRepository struct {
	path      string
	validator *validation.Validator
}

// NewCSV creates a CSV-backed repository
func NewCSV(path string, validator *validation.Validator) *CSVRepository {
	return &CSVRepository{path: path, validator: validator}
}

// GetRows reads and validates the whole file in one shot
func (r *CSVRepository) GetRows(ctx context.Context) ([]contracts.Company, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // validator reports short rows per-row

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV records: %w", err)
	}

	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	// Validation errors pass through untouched so the caller can tell
	// a data-quality problem apart from an I/O one
	return r.validator.ValidateRows(rows)
}
