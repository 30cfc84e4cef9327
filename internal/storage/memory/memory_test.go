package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"expenses/internal/core"
)

func TestMemoryStoreAppendAndLoad(t *testing.T) {
	s := New()
	got, err := s.Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("unexpected load: %v err=%v", got, err)
	}

	ref, err := s.Append(context.Background(), core.Expense{
		Category: "Food",
		Amount:   core.Money{Cents: 123},
		Date:     "2024-01-01",
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	got, _ = s.Load(context.Background())
	if len(got) != 1 || got[0].Category != "Food" {
		t.Fatalf("unexpected load after append: %v", got)
	}

	// Loaded slices are copies
	got[0].Category = "changed"
	again, _ := s.Load(context.Background())
	if again[0].Category != "Food" {
		t.Fatalf("store mutated through loaded slice")
	}
}

func TestNewFromFileSeeds(t *testing.T) {
	dir := t.TempDir()
	// No file -> empty
	s := NewFromFile(filepath.Join(dir, "missing.txt"))
	if got, _ := s.Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty store when file missing")
	}

	path := filepath.Join(dir, "seed.txt")
	content := "# header\nFood;12.50;2024-01-01;lunch\n\nBills;abc;2024-01-02;bad\nTransport;3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	s = NewFromFile(path)
	got, _ := s.Load(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected 2 seeded expenses, got %v", got)
	}
	if got[0].Notes != "lunch" || got[0].Amount.Cents != 1250 {
		t.Fatalf("unexpected first seed: %+v", got[0])
	}
	if got[1].Category != "Transport" || got[1].Date == "" {
		t.Fatalf("unexpected second seed: %+v", got[1])
	}
}
