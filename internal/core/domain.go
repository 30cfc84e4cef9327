package core

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used by every store.
const DateLayout = "2006-01-02"

type (
	// Expense is a single logged expense. Records carry no identifier;
	// insertion order is their only identity.
	Expense struct {
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
		Date     string `json:"date"`
		Notes    string `json:"notes"`
	}

	// Option tunes how NewExpense interprets raw input.
	Option func(*options)

	options struct {
		now        func() time.Time
		permissive bool
	}
)

// WithClock overrides the clock used to fill in an empty date.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithPermissiveDates stores non-empty dates verbatim without checking
// that they are valid calendar dates.
func WithPermissiveDates() Option {
	return func(o *options) { o.permissive = true }
}

// NewExpense builds a record from raw user input. The amount must parse as
// a finite, non-negative number; an empty date becomes today's local date.
func NewExpense(category, amount, date, notes string, opts ...Option) (Expense, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	m, err := ParseMoney(amount)
	if err != nil {
		return Expense{}, err
	}

	date = strings.TrimSpace(date)
	if date == "" {
		date = o.now().Format(DateLayout)
	} else if !o.permissive {
		if err := ValidateDate(date); err != nil {
			return Expense{}, err
		}
	}

	return Expense{
		Category: strings.TrimSpace(category),
		Amount:   m,
		Date:     date,
		Notes:    notes,
	}, nil
}

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return &ValidationError{Kind: InvalidDate, Field: "date", Value: s}
	}
	return nil
}
