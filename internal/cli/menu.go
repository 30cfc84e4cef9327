package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"
	"expenses/internal/report"
	"expenses/internal/services"
)

// Service is the set of operations the menu drives.
type Service interface {
	Record(ctx context.Context, in services.RecordInput) (core.Expense, error)
	List(ctx context.Context) ([]core.Expense, error)
	Summary(ctx context.Context) (report.Summary, error)
	CategoryTotals(ctx context.Context) ([]core.CategoryAmount, error)
	Export(ctx context.Context, format export.Format, path string) (string, error)
}

var menuItems = []string{
	"1. Enter Expense",
	"2. View Expenses",
	"3. View Chart",
	"4. View Report",
	"5. Help",
	"6. Exit",
}

const helpText = `Enter Expense  record a category, amount, date and notes.
               Leave the date blank to use today's date.
View Expenses  list every recorded expense in the order entered.
View Chart     draw spending per category; optionally save a
               workbook with the same bar chart.
View Report    totals, average and per-category breakdown.
Exit           leave the program.
`

// Menu is the blocking prompt/read/act/print loop.
type Menu struct {
	svc    Service
	in     *bufio.Scanner
	out    *Renderer
	logger *applog.Logger
}

func NewMenu(svc Service, in io.Reader, out io.Writer, currency string, logger *applog.Logger) *Menu {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Menu{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    NewRenderer(out, currency),
		logger: logger.WithComponent(applog.ComponentCLI),
	}
}

// Run loops until the user exits or input ends. Failures of a single
// action are reported and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		choice, ok := m.prompt("\nChoose an option (1-6): ")
		if !ok {
			m.out.printf("\n")
			return m.in.Err()
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = m.record(ctx)
		case "2":
			err = m.list(ctx)
		case "3":
			err = m.chart(ctx)
		case "4":
			err = m.report(ctx)
		case "5":
			m.out.printf("\n%s", helpText)
		case "6":
			m.out.printf("\n")
			m.out.Centered("Goodbye!")
			return nil
		default:
			m.out.printf("\n")
			m.out.Centered("Invalid choice. Please select a valid option.")
		}

		if err != nil {
			m.reportError(ctx, err)
		}
	}
}

func (m *Menu) printMenu() {
	m.out.printf("\n")
	m.out.Centered("================ Expense Tracker ===============")
	for _, item := range menuItems {
		m.out.Centered(item)
	}
	m.out.printf("%s\n", strings.Repeat("=", lineWidth))
}

func (m *Menu) prompt(label string) (string, bool) {
	m.out.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) record(ctx context.Context) error {
	m.out.printf("\n")
	m.out.Centered("=== Expense Tracker ===")

	var in services.RecordInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter expense category (e.g., Food, Transport, Bills): ", &in.Category},
		{"Enter expense amount: ", &in.Amount},
		{"Enter the date (YYYY-MM-DD, blank for today): ", &in.Date},
		{"Enter any additional notes: ", &in.Notes},
	}
	for _, f := range fields {
		v, ok := m.prompt(f.label)
		if !ok {
			return io.ErrUnexpectedEOF
		}
		*f.dst = v
	}

	e, err := m.svc.Record(ctx, in)
	if err != nil {
		return err
	}
	m.out.Recorded(e)
	return nil
}

func (m *Menu) list(ctx context.Context) error {
	expenses, err := m.svc.List(ctx)
	if err != nil {
		return err
	}
	m.out.printf("\n")
	m.out.List(expenses)
	return nil
}

func (m *Menu) report(ctx context.Context) error {
	s, err := m.svc.Summary(ctx)
	if err != nil {
		return err
	}
	m.out.printf("\n")
	m.out.Report(s)
	return nil
}

func (m *Menu) chart(ctx context.Context) error {
	totals, err := m.svc.CategoryTotals(ctx)
	if err != nil {
		return err
	}
	m.out.printf("\n")
	m.out.Chart(totals)
	if len(totals) == 0 {
		return nil
	}

	answer, ok := m.prompt("\nSave chart workbook? [y/N]: ")
	if !ok || !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return nil
	}
	path, err := m.svc.Export(ctx, export.FormatXLSX, "")
	if err != nil {
		return err
	}
	m.out.printf("Chart saved to %s\n", path)
	return nil
}

func (m *Menu) reportError(ctx context.Context, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		switch ve.Kind {
		case core.InvalidAmount:
			m.out.printf("\nInvalid amount %q: enter a number such as 12.50.\n", ve.Value)
		case core.InvalidDate:
			m.out.printf("\nInvalid date %q: use YYYY-MM-DD.\n", ve.Value)
		default:
			m.out.printf("\nInvalid input: %v\n", err)
		}
	case errors.Is(err, io.ErrUnexpectedEOF):
		m.out.printf("\nInput ended before the expense was complete; nothing was saved.\n")
	default:
		m.logger.ErrorContext(ctx, "Menu action failed", applog.NewFields().
			WithErrorType(applog.ErrorTypeInternal).
			WithError(err).ToSlice()...)
		m.out.printf("\nError: %v\n", err)
	}
}
