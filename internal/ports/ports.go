package ports

import (
	"context"

	"expenses/internal/core"
)

// Ports for the persistence adapters.
type (
	ExpenseWriter interface {
		Append(ctx context.Context, e core.Expense) (ref string, err error)
	}

	// ExpenseLoader returns the full collection in insertion order.
	ExpenseLoader interface {
		Load(ctx context.Context) ([]core.Expense, error)
	}

	// Mirror is a secondary representation updated after every append.
	// It receives the full collection including the added record.
	Mirror interface {
		Name() string
		Mirror(ctx context.Context, all []core.Expense, added core.Expense) error
	}

	// SchemaEnsurer is implemented by stores that need a schema created
	// before first use.
	SchemaEnsurer interface {
		EnsureSchema(ctx context.Context) error
	}
)
