package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"expenses/internal/core"
)

// Store keeps the collection in process memory. Nothing survives exit.
type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New(seed ...core.Expense) *Store {
	return &Store{items: append([]core.Expense(nil), seed...)}
}

// NewFromFile seeds the store from a CSV-like file of
// "category;amount;date;notes" lines. Blank lines and lines starting with
// '#' are skipped, as are lines that do not parse.
func NewFromFile(path string) *Store {
	return New(readSeed(path)...)
}

// Append stores the expense and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e core.Expense) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Load returns a copy of the collection.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]core.Expense, 0, len(s.items)), s.items...), nil
}

func (s *Store) Close() error {
	return nil
}

func readSeed(path string) []core.Expense {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []core.Expense
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, ";", 4)
		for len(fields) < 4 {
			fields = append(fields, "")
		}
		e, err := core.NewExpense(fields[0], fields[1], fields[2], fields[3], core.WithPermissiveDates())
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}
