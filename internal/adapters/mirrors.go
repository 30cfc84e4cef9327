package adapters

import (
	"context"

	"expenses/internal/core"
	"expenses/internal/storage"
)

// CSVMirror adapts the tabular file to ports.Mirror. The file is rewritten
// in full from the collection on every append.
type CSVMirror struct {
	path string
}

func NewCSVMirror(path string) *CSVMirror {
	return &CSVMirror{path: path}
}

func (m *CSVMirror) Name() string {
	return storage.StoreTabular
}

func (m *CSVMirror) Mirror(_ context.Context, all []core.Expense, _ core.Expense) error {
	return storage.WriteCSV(m.path, all)
}

// SQLiteMirror adapts SQLiteRepository to ports.Mirror. Unlike the other
// stores it is incremental: only the added record is inserted.
type SQLiteMirror struct {
	repo *storage.SQLiteRepository
}

func NewSQLiteMirror(repo *storage.SQLiteRepository) *SQLiteMirror {
	return &SQLiteMirror{repo: repo}
}

func (m *SQLiteMirror) Name() string {
	return storage.StoreRelational
}

func (m *SQLiteMirror) Mirror(ctx context.Context, _ []core.Expense, added core.Expense) error {
	_, err := m.repo.Insert(ctx, added)
	return err
}

// EnsureSchema implements ports.SchemaEnsurer
func (m *SQLiteMirror) EnsureSchema(ctx context.Context) error {
	return m.repo.EnsureSchema(ctx)
}

func (m *SQLiteMirror) Close() error {
	return m.repo.Close()
}

// DocumentMirror rewrites the JSON document from the full collection. It
// is used when the relational store is the authoritative one.
type DocumentMirror struct {
	store *storage.DocumentStore
}

func NewDocumentMirror(store *storage.DocumentStore) *DocumentMirror {
	return &DocumentMirror{store: store}
}

func (m *DocumentMirror) Name() string {
	return storage.StoreDocument
}

func (m *DocumentMirror) Mirror(ctx context.Context, all []core.Expense, _ core.Expense) error {
	return m.store.Save(ctx, all)
}
