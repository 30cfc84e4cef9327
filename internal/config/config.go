package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
)

// Config is built once at start and passed down; nothing mutates it after
// Merge.
type Config struct {
	// Storage locations. Relative paths resolve against DataDir.
	DataDir  string `validate:"required"`
	JSONPath string `validate:"required"`
	CSVPath  string `validate:"required"`
	DBPath   string `validate:"required"`
	XLSXPath string `validate:"required"`

	// Backend selection
	Backend string `validate:"oneof=json sqlite memory"`

	// MirrorOnWrite rewrites the CSV file and inserts into the SQLite
	// database on every append, in addition to the authoritative store.
	MirrorOnWrite bool

	// StrictDates rejects user-supplied dates that are not real YYYY-MM-DD
	// calendar dates.
	StrictDates bool

	// Presentation
	Currency string `validate:"required,max=8"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

func Load() *Config {
	cfg := &Config{
		DataDir:  getEnv("EXPENSES_DATA_DIR", "."),
		JSONPath: getEnv("EXPENSES_JSON_PATH", "expenses.json"),
		CSVPath:  getEnv("EXPENSES_CSV_PATH", "expenses.csv"),
		DBPath:   getEnv("EXPENSES_DB_PATH", "expenses.db"),
		XLSXPath: getEnv("EXPENSES_XLSX_PATH", "expenses.xlsx"),

		Backend: getEnv("EXPENSES_BACKEND", "json"),

		MirrorOnWrite: getEnvBool("EXPENSES_MIRROR_ON_WRITE", false),
		StrictDates:   getEnvBool("EXPENSES_STRICT_DATES", true),

		Currency: getEnv("EXPENSES_CURRENCY", "₱"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "warn")),
	}

	return cfg
}

// Merge applies the non-zero fields of overrides on top of c. Boolean
// overrides can only switch an option on.
func (c *Config) Merge(overrides Config) error {
	if err := mergo.Merge(c, overrides, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge config overrides: %w", err)
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	// Check if data directory exists or can be created
	if c.DataDir != "" && c.DataDir != "." {
		if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
			if err := os.MkdirAll(c.DataDir, 0755); err != nil {
				problems = append(problems, fmt.Sprintf("cannot create data directory '%s': %v", c.DataDir, err))
			}
		}
	}

	if c.Backend == "sqlite" && c.MirrorOnWrite && c.Resolve(c.DBPath) == c.Resolve(c.JSONPath) {
		problems = append(problems, "database path and document path must differ")
	}

	// Return combined errors
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("invalid %s '%v': must be one of [%s]", fe.Field(), fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("invalid %s '%v': at most %s characters", fe.Field(), fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("invalid %s '%v': failed %s check", fe.Field(), fe.Value(), fe.Tag())
	}
}

// Resolve returns path as is when absolute, otherwise joined to DataDir.
func (c *Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

// DocumentPath is the resolved location of the JSON store.
func (c *Config) DocumentPath() string { return c.Resolve(c.JSONPath) }

// TabularPath is the resolved location of the CSV file.
func (c *Config) TabularPath() string { return c.Resolve(c.CSVPath) }

// RelationalPath is the resolved location of the SQLite database.
func (c *Config) RelationalPath() string { return c.Resolve(c.DBPath) }

// WorkbookPath is the resolved location of the XLSX workbook.
func (c *Config) WorkbookPath() string { return c.Resolve(c.XLSXPath) }

// SlogLevel maps LogLevel onto slog levels, defaulting to warn.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
