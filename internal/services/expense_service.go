package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"
	"expenses/internal/report"
)

// ErrServiceClosed is returned by operations called after Close.
var ErrServiceClosed = errors.New("expense service closed")

// Persistence is what the service needs from the storage layer.
type Persistence interface {
	Load(ctx context.Context) ([]core.Expense, error)
	AppendAndPersist(ctx context.Context, e core.Expense) (string, error)
	EnsureSchema(ctx context.Context) error
}

// RecordInput is the raw, unparsed user input for a new expense.
type RecordInput struct {
	Category string
	Amount   string
	Date     string
	Notes    string
}

// Options configures an ExpenseService.
type Options struct {
	// ExportPaths are the default destinations per export format.
	ExportPaths map[export.Format]string
	// ExpenseOptions are applied to every NewExpense call.
	ExpenseOptions []core.Option
	// Cleanup releases the underlying stores on Close.
	Cleanup func() error
	Logger  *applog.Logger
}

// ExpenseService is the complete set of operations the presentation layer
// calls. Every operation reads the collection fresh from storage.
//
// Store access and Close are serialized, so Close called from a signal
// handler waits for an in-flight write to finish.
type ExpenseService struct {
	store  Persistence
	opts   Options
	logger *applog.Logger

	mu     sync.Mutex
	closed bool
}

func NewExpenseService(store Persistence, opts Options) *ExpenseService {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &ExpenseService{
		store:  store,
		opts:   opts,
		logger: logger.WithComponent(applog.ComponentExpense),
	}
}

// Init prepares the stores. Safe to call on every start.
func (s *ExpenseService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrServiceClosed
	}

	if err := s.store.EnsureSchema(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Schema setup failed", applog.NewFields().
			WithOperation(applog.OpStartup).
			WithErrorType(applog.ErrorTypePersistence).
			WithError(err).ToSlice()...)
		return err
	}
	return nil
}

// Record validates the input and appends the resulting expense. Invalid
// input is rejected before any store is touched.
func (s *ExpenseService) Record(ctx context.Context, in RecordInput) (core.Expense, error) {
	e, err := core.NewExpense(in.Category, in.Amount, in.Date, in.Notes, s.opts.ExpenseOptions...)
	if err != nil {
		s.logger.WarnContext(ctx, "Rejected expense input", applog.NewFields().
			WithOperation(applog.OpValidate).
			WithErrorType(applog.ErrorTypeValidation).
			WithError(err).ToSlice()...)
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return core.Expense{}, ErrServiceClosed
	}

	ref, err := s.store.AppendAndPersist(ctx, e)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist expense", applog.NewFields().
			WithOperation(applog.OpAppend).
			WithErrorType(applog.ErrorTypePersistence).
			WithExpense(e.Category, e.Amount.Cents, e.Date).
			WithError(err).ToSlice()...)
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense recorded", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithExpense(e.Category, e.Amount.Cents, e.Date).ToSlice()...)
	s.logger.DebugContext(ctx, "Expense stored", applog.FieldRef, ref)

	return e, nil
}

// List returns every expense in insertion order.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *ExpenseService) load(ctx context.Context) ([]core.Expense, error) {
	if s.closed {
		return nil, ErrServiceClosed
	}

	expenses, err := s.store.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load expenses", applog.NewFields().
			WithOperation(applog.OpList).
			WithErrorType(applog.ErrorTypePersistence).
			WithError(err).ToSlice()...)
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return expenses, nil
}

// Summary reduces the current collection into the report view. An empty
// collection produces a Summary with Empty set.
func (s *ExpenseService) Summary(ctx context.Context) (report.Summary, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	sum := report.Summarize(expenses)
	s.logger.WithComponent(applog.ComponentReport).DebugContext(ctx, "Summary computed",
		applog.FieldOperation, applog.OpReport,
		applog.FieldCount, sum.Count)
	return sum, nil
}

// CategoryTotals returns totals by category in first-seen order, the
// input to charting.
func (s *ExpenseService) CategoryTotals(ctx context.Context) ([]core.CategoryAmount, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.TotalsByCategory(expenses), nil
}

// Export writes the current collection in the requested format. An empty
// path selects the configured default. The written path is returned.
func (s *ExpenseService) Export(ctx context.Context, format export.Format, path string) (string, error) {
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if path == "" {
		path = s.opts.ExportPaths[format]
	}
	if path == "" {
		return "", fmt.Errorf("no destination configured for %s export", format)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	if err := export.Write(ctx, format, path, expenses); err != nil {
		s.logger.ErrorContext(ctx, "Export failed",
			applog.FieldOperation, applog.OpExport,
			applog.FieldFormat, format.String(),
			applog.FieldPath, path,
			applog.FieldError, err)
		return "", fmt.Errorf("export %s: %w", format, err)
	}

	s.logger.InfoContext(ctx, "Export completed",
		applog.FieldFormat, format.String(),
		applog.FieldPath, path,
		applog.FieldCount, len(expenses))
	return path, nil
}

// Close releases the underlying stores once no operation is using them.
// Further calls are no-ops.
func (s *ExpenseService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.opts.Cleanup != nil {
		if err := s.opts.Cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %w", errors.Join(errs...))
	}
	return nil
}
