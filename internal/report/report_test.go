package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func mustExpense(t *testing.T, category, amount, date, notes string) core.Expense {
	t.Helper()
	e, err := core.NewExpense(category, amount, date, notes)
	require.NoError(t, err)
	return e
}

func TestScenarioFoodTwice(t *testing.T) {
	c := []core.Expense{
		mustExpense(t, "Food", "12.50", "2024-01-01", "lunch"),
		mustExpense(t, "Food", "7.50", "2024-01-02", ""),
	}

	assert.Equal(t, map[string]core.Money{"Food": {Cents: 2000}}, TotalsMap(c))
	assert.Equal(t, []core.CategoryAmount{{Name: "Food", Amount: core.Money{Cents: 2000}}}, TotalsByCategory(c))
	assert.Equal(t, 20.0, OverallTotal(c).Float())

	avg, err := AverageAmount(c)
	require.NoError(t, err)
	assert.Equal(t, 10.0, avg)

	assert.Equal(t, []core.CategoryCount{{Name: "Food", Count: 2}}, CategoryFrequency(c))
}

func TestCaseSensitiveCategories(t *testing.T) {
	c := []core.Expense{
		mustExpense(t, "Food", "1", "2024-01-01", ""),
		mustExpense(t, "food", "2", "2024-01-01", ""),
	}

	totals := TotalsMap(c)
	assert.Len(t, totals, 2)
	assert.Equal(t, int64(100), totals["Food"].Cents)
	assert.Equal(t, int64(200), totals["food"].Cents)

	assert.Equal(t, []core.CategoryCount{{Name: "Food", Count: 1}, {Name: "food", Count: 1}}, CategoryFrequency(c))
}

func TestFirstSeenOrder(t *testing.T) {
	c := []core.Expense{
		mustExpense(t, "Transport", "3", "2024-01-01", ""),
		mustExpense(t, "Bills", "40", "2024-01-02", ""),
		mustExpense(t, "Transport", "2", "2024-01-03", ""),
		mustExpense(t, "Food", "9.99", "2024-01-04", ""),
	}

	var names []string
	for _, ca := range TotalsByCategory(c) {
		names = append(names, ca.Name)
	}
	assert.Equal(t, []string{"Transport", "Bills", "Food"}, names)

	freq := CategoryFrequency(c)
	require.Len(t, freq, 3)
	assert.Equal(t, core.CategoryCount{Name: "Transport", Count: 2}, freq[0])
}

func TestCategoryTotalsSumToOverall(t *testing.T) {
	amounts := []string{"0.10", "0.20", "0.30", "19.99", "1e2", "3,33", "0", "12.345"}
	categories := []string{"a", "b", "A", "a", "c", "b", "d", "a"}

	var c []core.Expense
	for i := range amounts {
		c = append(c, mustExpense(t, categories[i], amounts[i], "2024-05-05", ""))

		var sum core.Money
		for _, ca := range TotalsByCategory(c) {
			sum = sum.Add(ca.Amount)
		}
		assert.Equal(t, OverallTotal(c), sum, "after %d records", len(c))
	}
}

func TestEmptyCollection(t *testing.T) {
	assert.Equal(t, core.Money{}, OverallTotal(nil))
	assert.Empty(t, TotalsByCategory(nil))
	assert.Empty(t, CategoryFrequency(nil))

	_, err := AverageAmount(nil)
	assert.ErrorIs(t, err, ErrEmptyCollection)

	s := Summarize(nil)
	assert.True(t, s.Empty)
	assert.Zero(t, s.Count)
}

func TestSummarize(t *testing.T) {
	c := []core.Expense{
		mustExpense(t, "Food", "10", "2024-01-01", ""),
		mustExpense(t, "Bills", "50", "2024-01-02", ""),
		mustExpense(t, "Food", "30", "2024-01-03", ""),
	}

	s := Summarize(c)
	assert.False(t, s.Empty)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, int64(9000), s.Total.Cents)
	assert.InDelta(t, 30.0, s.Average, 1e-9)
	assert.Len(t, s.ByCategory, 2)

	top, ok := Top(s.ByCategory)
	require.True(t, ok)
	assert.Equal(t, "Bills", top.Name)

	_, ok = Top(nil)
	assert.False(t, ok)
}
