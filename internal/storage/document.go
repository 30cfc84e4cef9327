package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"expenses/internal/core"
	applog "expenses/internal/log"
)

// StoreDocument names the JSON store in errors and logs.
const StoreDocument = "document"

// DocumentStore keeps the whole collection in one pretty-printed JSON
// array. It is the authoritative store: every load reads from here.
type DocumentStore struct {
	path string
}

func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Path returns the file location.
func (s *DocumentStore) Path() string {
	return s.path
}

// Load reads the full collection. A missing or blank file is an empty
// collection; anything that does not decode is a LoadFailure.
func (s *DocumentStore) Load(ctx context.Context) ([]core.Expense, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, core.NewLoadError(StoreDocument, s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Expense{}, nil
	}

	expenses := make([]core.Expense, 0)
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, core.NewLoadError(StoreDocument, s.path, fmt.Errorf("decode: %w", err))
	}

	logger().DebugContext(ctx, "Loaded document store", applog.FieldPath, s.path, applog.FieldCount, len(expenses))
	return expenses, nil
}

// Save rewrites the whole file with the given collection. The new content
// is written to a temporary file first so a failed write never leaves a
// truncated document behind.
func (s *DocumentStore) Save(ctx context.Context, expenses []core.Expense) (err error) {
	if expenses == nil {
		expenses = []core.Expense{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(expenses); err != nil {
		return core.NewWriteError(StoreDocument, s.path, fmt.Errorf("encode: %w", err))
	}

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return core.NewWriteError(StoreDocument, s.path, err)
	}

	logger().DebugContext(ctx, "Saved document store", applog.FieldPath, s.path, applog.FieldCount, len(expenses))
	return nil
}

// Append implements ports.ExpenseWriter: load, append, rewrite in full.
// The reference is the record's 1-based position.
func (s *DocumentStore) Append(ctx context.Context, e core.Expense) (string, error) {
	expenses, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	expenses = append(expenses, e)
	if err := s.Save(ctx, expenses); err != nil {
		return "", err
	}
	return "json:" + strconv.Itoa(len(expenses)), nil
}

func (s *DocumentStore) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
