package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentStorage, Output: &buf})

	l.Info("saved", FieldCount, 3)
	out := buf.String()
	if !strings.Contains(out, "component=storage") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected log line: %q", out)
	}

	buf.Reset()
	l.WithComponent(ComponentExport).Warn("exported")
	if !strings.Contains(buf.String(), "component=export") {
		t.Fatalf("expected component override, got %q", buf.String())
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})

	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), "component=app") {
		t.Fatalf("expected default component, got %q", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithOperation(OpAppend).
		WithExpense("Food", 1250, "2024-01-01").
		WithError(errors.New("boom")).
		WithError(nil)

	if f[FieldOperation] != OpAppend || f[FieldAmountCents] != int64(1250) || f[FieldError] != "boom" {
		t.Fatalf("unexpected fields: %v", f)
	}
	if got := len(f.ToSlice()); got != 2*len(f) {
		t.Fatalf("expected %d slice entries, got %d", 2*len(f), got)
	}
}

func TestForComponentFollowsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(Config{Level: slog.LevelDebug, Output: &buf}))

	ForComponent(ComponentReport).Debug("summarized", FieldCount, 2)
	out := buf.String()
	if !strings.Contains(out, "component=report") || !strings.Contains(out, "count=2") {
		t.Fatalf("unexpected log line: %q", out)
	}
}
