package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"expenses/internal/core"
	"expenses/internal/report"
)

const (
	lineWidth = 50
	barWidth  = 30
)

// Renderer formats core values as terminal text.
type Renderer struct {
	out      io.Writer
	printer  *message.Printer
	currency string
}

func NewRenderer(out io.Writer, currency string) *Renderer {
	return &Renderer{
		out:      out,
		printer:  message.NewPrinter(language.English),
		currency: currency,
	}
}

// Amount formats money with grouping and the currency symbol, e.g. ₱1,234.50.
func (r *Renderer) Amount(m core.Money) string {
	return r.currency + r.printer.Sprintf("%.2f", m.Float())
}

func (r *Renderer) amountFloat(v float64) string {
	return r.currency + r.printer.Sprintf("%.2f", v)
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Centered writes s centred in the menu width.
func (r *Renderer) Centered(s string) {
	r.printf("%s\n", center(s, lineWidth))
}

// Recorded echoes a newly recorded expense.
func (r *Renderer) Recorded(e core.Expense) {
	r.printf("\n")
	r.Centered("Expense Recorded:")
	r.Centered("Category: " + e.Category)
	r.Centered("Amount: " + r.Amount(e.Amount))
	r.Centered("Date: " + e.Date)
	r.Centered("Notes: " + e.Notes)
}

// List writes one line per expense in insertion order.
func (r *Renderer) List(expenses []core.Expense) {
	if len(expenses) == 0 {
		r.printf("No expenses recorded yet.\n")
		return
	}
	r.printf("%-4s %-10s %-16s %14s  %s\n", "#", "Date", "Category", "Amount", "Notes")
	r.printf("%s\n", strings.Repeat("-", lineWidth+10))
	for i, e := range expenses {
		r.printf("%-4d %-10s %-16s %14s  %s\n", i+1, e.Date, truncate(e.Category, 16), r.Amount(e.Amount), e.Notes)
	}
}

// Report writes totals, average, top category and the per-category table.
func (r *Renderer) Report(s report.Summary) {
	if s.Empty {
		r.printf("No expenses recorded yet.\n")
		return
	}

	r.Centered("Expense Report")
	r.printf("%s\n", strings.Repeat("=", lineWidth))
	r.printf("%-16s %d\n", "Entries:", s.Count)
	r.printf("%-16s %s\n", "Total spent:", r.Amount(s.Total))
	r.printf("%-16s %s\n", "Average:", r.amountFloat(s.Average))
	if top, ok := report.Top(s.ByCategory); ok {
		r.printf("%-16s %s (%s)\n", "Top category:", top.Name, r.Amount(top.Amount))
	}

	counts := make(map[string]int, len(s.Frequency))
	for _, cc := range s.Frequency {
		counts[cc.Name] = cc.Count
	}

	r.printf("\n%-20s %6s %16s\n", "Category", "Count", "Total")
	r.printf("%s\n", strings.Repeat("-", 44))
	for _, ca := range s.ByCategory {
		r.printf("%-20s %6d %16s\n", truncate(ca.Name, 20), counts[ca.Name], r.Amount(ca.Amount))
	}
}

// Chart draws a horizontal bar per category scaled to the largest total.
func (r *Renderer) Chart(totals []core.CategoryAmount) {
	if len(totals) == 0 {
		r.printf("No expenses recorded yet.\n")
		return
	}

	r.Centered("Spending by Category")
	var largest int64
	for _, ca := range totals {
		if ca.Amount.Cents > largest {
			largest = ca.Amount.Cents
		}
	}
	for _, ca := range totals {
		r.printf("%-16s |%-*s %s\n", truncate(ca.Name, 16), barWidth, bar(ca.Amount.Cents, largest), r.Amount(ca.Amount))
	}
}

func bar(v, largest int64) string {
	if largest <= 0 || v <= 0 {
		return ""
	}
	n := int((v*barWidth + largest/2) / largest)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
