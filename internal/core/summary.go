package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// CategoryCount is the number of records logged under a category.
type CategoryCount struct {
	Name  string
	Count int
}
