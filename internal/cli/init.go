// Package cli provides process bootstrap and the interactive presentation
// layer: the numbered menu loop and text rendering of lists, reports and
// charts.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expenses/internal/backend"
	"expenses/internal/config"
	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

// LoadEnvFile loads the .env file for local use.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger from cfg and makes it the
// default slog logger.
func SetupLogger(cfg *config.Config) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     cfg.SlogLevel(),
		Component: applog.ComponentApp,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from the environment, applies overrides
// and validates the result.
func LoadConfig(overrides config.Config) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Merge(overrides); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		applog.New(applog.DefaultConfig()).Error("Invalid configuration", applog.NewFields().
			WithErrorType(applog.ErrorTypeConfiguration).
			WithError(err).ToSlice()...)
		return nil, err
	}
	return cfg, nil
}

// NewService wires the configured backend, its mirrors and the export
// destinations into an ExpenseService and prepares the schema.
func NewService(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*services.ExpenseService, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	result, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	var expenseOpts []core.Option
	if !cfg.StrictDates {
		expenseOpts = append(expenseOpts, core.WithPermissiveDates())
	}

	svc := services.NewExpenseService(result.Store(), services.Options{
		ExportPaths: map[export.Format]string{
			export.FormatCSV:    cfg.TabularPath(),
			export.FormatSQLite: cfg.RelationalPath(),
			export.FormatXLSX:   cfg.WorkbookPath(),
		},
		ExpenseOptions: expenseOpts,
		Cleanup:        result.Cleanup,
		Logger:         logger,
	})

	if err := svc.Init(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	logger.DebugContext(ctx, "Service ready",
		applog.FieldBackend, bcfg.Type.String(),
		"mirror_on_write", bcfg.MirrorOnWrite,
		"strict_dates", cfg.StrictDates)
	return svc, nil
}

// HandleInterrupt closes the service and exits normally when the user
// interrupts the program. cleanup must wait for any write in progress
// before releasing the stores; ExpenseService.Close does. The returned
// function stops the handler.
func HandleInterrupt(logger *applog.Logger, cleanup func() error) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			if cleanup != nil {
				if err := cleanup(); err != nil {
					logger.Error("Cleanup failed", applog.FieldError, err)
				}
			}
			os.Exit(0)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
