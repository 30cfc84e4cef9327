// Package report reduces a collection of expenses into category totals,
// counts and summary statistics. Every function is pure.
package report

import (
	"errors"

	"expenses/internal/core"
)

// ErrEmptyCollection is returned by AverageAmount when there is nothing
// to average.
var ErrEmptyCollection = errors.New("no expenses")

// Summary is the full report view of a collection.
type Summary struct {
	Count      int
	Total      core.Money
	Average    float64
	ByCategory []core.CategoryAmount
	Frequency  []core.CategoryCount
	Empty      bool
}

// TotalsByCategory sums amounts per category in first-seen order.
// Categories are matched exactly, so "Food" and "food" are distinct.
func TotalsByCategory(expenses []core.Expense) []core.CategoryAmount {
	index := make(map[string]int)
	var out []core.CategoryAmount
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, core.CategoryAmount{Name: e.Category})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// TotalsMap is TotalsByCategory keyed by category name.
func TotalsMap(expenses []core.Expense) map[string]core.Money {
	totals := make(map[string]core.Money)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// OverallTotal sums every amount; zero for an empty collection.
func OverallTotal(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// AverageAmount is the arithmetic mean of all amounts.
func AverageAmount(expenses []core.Expense) (float64, error) {
	if len(expenses) == 0 {
		return 0, ErrEmptyCollection
	}
	return OverallTotal(expenses).Float() / float64(len(expenses)), nil
}

// CategoryFrequency counts records per category in first-seen order.
func CategoryFrequency(expenses []core.Expense) []core.CategoryCount {
	index := make(map[string]int)
	var out []core.CategoryCount
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, core.CategoryCount{Name: e.Category})
		}
		out[i].Count++
	}
	return out
}

// Summarize builds the report view. An empty collection yields a Summary
// with Empty set rather than an error.
func Summarize(expenses []core.Expense) Summary {
	if len(expenses) == 0 {
		return Summary{Empty: true}
	}
	avg, _ := AverageAmount(expenses)
	return Summary{
		Count:      len(expenses),
		Total:      OverallTotal(expenses),
		Average:    avg,
		ByCategory: TotalsByCategory(expenses),
		Frequency:  CategoryFrequency(expenses),
	}
}

// Top returns the category with the highest total. ok is false for an
// empty collection. Ties keep the first-seen category.
func Top(totals []core.CategoryAmount) (top core.CategoryAmount, ok bool) {
	for i, ca := range totals {
		if i == 0 || ca.Amount.Cents > top.Amount.Cents {
			top = ca
			ok = true
		}
	}
	return top, ok
}
