package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"expenses/internal/core"
)

// StoreTabular names the CSV store in errors and logs.
const StoreTabular = "tabular"

// CSVHeader is the fixed first row of the tabular store.
var CSVHeader = []string{"Category", "Amount", "Date", "Notes"}

// WriteCSV rewrites the tabular store at path from the full collection.
func WriteCSV(path string, expenses []core.Expense) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(CSVHeader); err != nil {
		return core.NewWriteError(StoreTabular, path, fmt.Errorf("write header: %w", err))
	}
	for _, e := range expenses {
		row := []string{
			e.Category,
			e.Amount.String(),
			e.Date,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return core.NewWriteError(StoreTabular, path, fmt.Errorf("write row: %w", err))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return core.NewWriteError(StoreTabular, path, fmt.Errorf("flush: %w", err))
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return core.NewWriteError(StoreTabular, path, err)
	}
	return nil
}
