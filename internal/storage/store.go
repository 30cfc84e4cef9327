package storage

import (
	"context"
	"fmt"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/ports"
)

// Primary is the authoritative store every load reads from.
type Primary interface {
	ports.ExpenseLoader
	ports.ExpenseWriter
}

// Store is the persistence facade: one authoritative store plus optional
// mirrors written on every append. There is no rollback across stores; a
// failing mirror leaves the earlier writes in place.
type Store struct {
	primary Primary
	mirrors []ports.Mirror
}

func logger() *applog.Logger {
	return applog.ForComponent(applog.ComponentStorage)
}

func NewStore(primary Primary, mirrors ...ports.Mirror) *Store {
	return &Store{primary: primary, mirrors: mirrors}
}

// Load returns the authoritative collection.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	return s.primary.Load(ctx)
}

// AppendAndPersist appends e to the authoritative store and then brings
// every mirror up to date. The first failure is returned as is.
func (s *Store) AppendAndPersist(ctx context.Context, e core.Expense) (string, error) {
	var all []core.Expense
	if len(s.mirrors) > 0 {
		loaded, err := s.primary.Load(ctx)
		if err != nil {
			return "", err
		}
		all = append(loaded, e)
	}

	ref, err := s.primary.Append(ctx, e)
	if err != nil {
		return "", err
	}

	for _, m := range s.mirrors {
		if err := m.Mirror(ctx, all, e); err != nil {
			logger().ErrorContext(ctx, "Mirror write failed, stores have diverged",
				"mirror", m.Name(), applog.FieldRef, ref, applog.FieldError, err)
			return ref, err
		}
	}

	return ref, nil
}

// EnsureSchema prepares every store that has a schema. Idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if se, ok := s.primary.(ports.SchemaEnsurer); ok {
		if err := se.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	for _, m := range s.mirrors {
		if se, ok := m.(ports.SchemaEnsurer); ok {
			if err := se.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("mirror %s: %w", m.Name(), err)
			}
		}
	}
	return nil
}
