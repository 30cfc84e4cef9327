package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func TestDocumentStoreLoadMissingFile(t *testing.T) {
	s := NewDocumentStore(filepath.Join(t.TempDir(), "expenses.json"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(filepath.Join(t.TempDir(), "nested", "expenses.json"))

	inputs := [][4]string{
		{"Food", "12.50", "2024-01-01", "lunch"},
		{"Food", "7.50", "2024-01-02", ""},
		{"Transport", "0.99", "2024-01-03", "bus, \"express\""},
		{"Bills", "1234.56", "2024-01-04", "électricité <kWh>"},
	}

	var want []core.Expense
	for i, in := range inputs {
		e, err := core.NewExpense(in[0], in[1], in[2], in[3])
		require.NoError(t, err)
		ref, err := s.Append(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, "json:"+strconv.Itoa(i+1), ref)
		want = append(want, e)
	}

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDocumentStoreFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.json")
	s := NewDocumentStore(path)

	require.NoError(t, s.Save(ctx, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	require.NoError(t, s.Save(ctx, []core.Expense{{Category: "Food", Amount: core.Money{Cents: 1250}, Date: "2024-01-01", Notes: "lunch"}}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "category": "Food",
    "amount": 12.50,
    "date": "2024-01-01",
    "notes": "lunch"
  }
]
`, string(data))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 12.5, raw[0]["amount"])
}

func TestDocumentStoreReadsForeignNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	content := `[{"category": "Food", "amount": 12.5, "date": "2024-01-01", "notes": ""},
	{"category": "Bills", "amount": 40, "date": "not a date", "notes": "kept"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := NewDocumentStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1250), got[0].Amount.Cents)
	assert.Equal(t, int64(4000), got[1].Amount.Cents)
	assert.Equal(t, "not a date", got[1].Date)
}

func TestDocumentStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"category": `), 0o644))

	_, err := NewDocumentStore(path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrLoadFailure)

	var pe *core.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, StoreDocument, pe.Store)
	assert.Equal(t, path, pe.Path)

	_, err = NewDocumentStore(path).Append(context.Background(), core.Expense{Category: "x"})
	assert.ErrorIs(t, err, core.ErrLoadFailure)
}

func TestDocumentStoreBlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	got, err := NewDocumentStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDocumentStoreUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// A regular file where a directory is expected fails on every platform.
	s := NewDocumentStore(filepath.Join(blocker, "expenses.json"))
	err := s.Save(context.Background(), []core.Expense{{Category: "Food"}})
	assert.ErrorIs(t, err, core.ErrWriteFailure)
}
