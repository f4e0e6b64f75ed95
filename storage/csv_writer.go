package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"foreclosure-scraper/models"
)

// csvColumns fixes the column order of the per-run snapshot file.
var csvColumns = []string{
	models.FieldSheriffNumber,
	models.FieldCaseNumber,
	models.FieldAddress,
	models.FieldSalesDate,
	models.FieldPlaintiff,
	models.FieldDefendant,
	models.FieldDescription,
	models.FieldJudgmentAmount,
	models.FieldGoodFaithUpset,
	models.FieldAttorney,
	models.FieldAttorneyPhone,
}

// CSVWriter writes a per-run snapshot of parsed property records to a CSV
// file, one row per listing.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	header := make([]string, 0, len(csvColumns)+1)
	header = append(header, csvColumns...)
	header = append(header, "Status Entries")
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per parsed record. Fields missing from a record
// produce empty cells.
func (c *CSVWriter) Write(records []*models.PropertyRecord) error {
	for _, r := range records {
		row := make([]string, 0, len(csvColumns)+1)
		for _, col := range csvColumns {
			row = append(row, r.Details[col])
		}
		row = append(row, strconv.Itoa(len(r.History)))

		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
