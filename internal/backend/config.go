package backend

import (
	"fmt"
	"path/filepath"

	"expenses/internal/config"
)

// SeedFileName is read by the memory backend from the data directory.
const SeedFileName = "seed_expenses.txt"

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.Backend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.Backend)
	}

	return Config{
		Type:          backendType,
		DocumentPath:  appConfig.DocumentPath(),
		DBPath:        appConfig.RelationalPath(),
		CSVPath:       appConfig.TabularPath(),
		MirrorOnWrite: appConfig.MirrorOnWrite,
		SeedFile:      filepath.Join(appConfig.DataDir, SeedFileName),
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case JSONBackend:
		if c.DocumentPath == "" {
			return fmt.Errorf("document path is required for json backend")
		}
	case SQLiteBackend:
		if c.DBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemoryBackend:
		// SeedFile is optional
	}

	if c.MirrorOnWrite {
		if c.CSVPath == "" {
			return fmt.Errorf("CSV path is required when mirroring on write")
		}
		if c.Type != SQLiteBackend && c.DBPath == "" {
			return fmt.Errorf("SQLite database path is required when mirroring on write")
		}
		if c.Type == SQLiteBackend && c.DocumentPath == "" {
			return fmt.Errorf("document path is required when mirroring on write")
		}
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{JSONBackend, SQLiteBackend, MemoryBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	strings := make([]string, len(types))
	for i, t := range types {
		strings[i] = t.String()
	}
	return strings
}
