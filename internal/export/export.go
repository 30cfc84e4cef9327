// Package export produces on-demand artifacts from the authoritative
// collection: a CSV file, a SQLite database and an XLSX workbook with a
// bar chart of totals by category.
package export

import (
	"context"
	"fmt"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/storage"
)

// Format names an export artifact.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
	FormatXLSX   Format = "xlsx"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatCSV, FormatSQLite, FormatXLSX}
}

func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is supported.
func (f Format) IsValid() bool {
	switch f {
	case FormatCSV, FormatSQLite, FormatXLSX:
		return true
	default:
		return false
	}
}

// Write renders expenses in the given format to path, replacing whatever
// was there.
func Write(ctx context.Context, format Format, path string, expenses []core.Expense) error {
	var err error
	switch format {
	case FormatCSV:
		err = CSV(path, expenses)
	case FormatSQLite:
		err = SQLite(ctx, path, expenses)
	case FormatXLSX:
		err = WriteXLSX(path, expenses)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return err
	}
	applog.ForComponent(applog.ComponentExport).InfoContext(ctx, "Export written",
		applog.FieldFormat, format.String(),
		applog.FieldPath, path,
		applog.FieldCount, len(expenses))
	return nil
}

// CSV writes the tabular artifact.
func CSV(path string, expenses []core.Expense) error {
	return storage.WriteCSV(path, expenses)
}

// SQLite writes the relational artifact, rebuilding the table so it
// matches the collection exactly.
func SQLite(ctx context.Context, path string, expenses []core.Expense) error {
	repo, err := storage.NewSQLiteRepository(path)
	if err != nil {
		return core.NewWriteError(storage.StoreRelational, path, err)
	}
	defer repo.Close()

	return repo.ReplaceAll(ctx, expenses)
}
