package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	expenses := []core.Expense{
		{Category: "Food", Amount: core.Money{Cents: 1250}, Date: "2024-01-01", Notes: "lunch"},
		{Category: "Bills", Amount: core.Money{Cents: 4000}, Date: "2024-01-02", Notes: "gas, water"},
	}
	require.NoError(t, WriteCSV(path, expenses))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Category", "Amount", "Date", "Notes"},
		{"Food", "12.50", "2024-01-01", "lunch"},
		{"Bills", "40.00", "2024-01-02", "gas, water"},
	}, rows)

	// Full rewrite, not append
	require.NoError(t, WriteCSV(path, expenses[:1]))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Category,Amount,Date,Notes\nFood,12.50,2024-01-01,lunch\n", string(data))
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, WriteCSV(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Category,Amount,Date,Notes\n", string(data))
}
