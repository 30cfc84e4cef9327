package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"expenses/internal/core"
	applog "expenses/internal/log"

	_ "modernc.org/sqlite"
)

// StoreRelational names the SQLite store in errors and logs.
const StoreRelational = "relational"

// SQLiteRepository is the relational representation of the collection:
// one row per expense plus a synthetic autoincrement id.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath
// and ensures the schema exists.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db, path: dbPath}

	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// Path returns the database file location.
func (r *SQLiteRepository) Path() string {
	return r.path
}

// EnsureSchema creates the expenses table if it is absent. Safe to call
// on every start.
func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if err := RunMigrations(r.path); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger().DebugContext(ctx, "Relational schema ready", applog.FieldPath, r.path)
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert adds a single row and returns its id.
func (r *SQLiteRepository) Insert(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (category, amount, date, notes) VALUES (?, ?, ?, ?)`,
		e.Category, e.Amount.Float(), e.Date, e.Notes)
	if err != nil {
		return 0, core.NewWriteError(StoreRelational, r.path, fmt.Errorf("insert expense: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, core.NewWriteError(StoreRelational, r.path, fmt.Errorf("last insert id: %w", err))
	}

	fields := applog.NewFields().WithExpense(e.Category, e.Amount.Cents, e.Date)
	fields["id"] = id
	logger().DebugContext(ctx, "Expense saved to SQLite", fields.ToSlice()...)

	return id, nil
}

// Append implements ports.ExpenseWriter; the row id is the reference.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Expense) (string, error) {
	id, err := r.Insert(ctx, e)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// Load implements ports.ExpenseLoader, returning rows in id order.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Expense, error) {
	return r.ListExpenses(ctx)
}

// ListExpenses returns every row in insertion order.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, amount, date, notes FROM expenses ORDER BY id`)
	if err != nil {
		return nil, core.NewLoadError(StoreRelational, r.path, fmt.Errorf("query expenses: %w", err))
	}
	defer rows.Close()

	expenses := make([]core.Expense, 0)
	for rows.Next() {
		var (
			e      core.Expense
			amount float64
		)
		if err := rows.Scan(&e.Category, &amount, &e.Date, &e.Notes); err != nil {
			return nil, core.NewLoadError(StoreRelational, r.path, fmt.Errorf("scan expense: %w", err))
		}
		e.Amount = core.Money{Cents: int64(math.Round(amount * 100))}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewLoadError(StoreRelational, r.path, fmt.Errorf("iterate expenses: %w", err))
	}

	return expenses, nil
}

// ReplaceAll rewrites the table from the given collection in a single
// transaction and restarts the id sequence.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, expenses []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.NewWriteError(StoreRelational, r.path, fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return core.NewWriteError(StoreRelational, r.path, fmt.Errorf("clear expenses: %w", err))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'expenses'`); err != nil {
		return core.NewWriteError(StoreRelational, r.path, fmt.Errorf("reset id sequence: %w", err))
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (category, amount, date, notes) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return core.NewWriteError(StoreRelational, r.path, fmt.Errorf("prepare insert: %w", err))
	}
	defer stmt.Close()

	for _, e := range expenses {
		if _, err := stmt.ExecContext(ctx, e.Category, e.Amount.Float(), e.Date, e.Notes); err != nil {
			return core.NewWriteError(StoreRelational, r.path, fmt.Errorf("insert expense: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return core.NewWriteError(StoreRelational, r.path, fmt.Errorf("commit: %w", err))
	}

	logger().InfoContext(ctx, "Relational store rewritten", applog.FieldPath, r.path, applog.FieldCount, len(expenses))
	return nil
}
