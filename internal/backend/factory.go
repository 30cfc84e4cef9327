package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/adapters"
	"expenses/internal/ports"
	"expenses/internal/storage"
	"expenses/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case JSONBackend:
		result, err = f.createJSONBackend(config)
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.MirrorOnWrite {
		if err := f.attachMirrors(ctx, config, result); err != nil {
			if result.Cleanup != nil {
				_ = result.Cleanup()
			}
			return nil, err
		}
	}

	return result, nil
}

func (f *DefaultFactory) createJSONBackend(config Config) (*BackendResult, error) {
	store := storage.NewDocumentStore(config.DocumentPath)

	f.logger.Info("Initialized JSON backend", "path", config.DocumentPath)

	return &BackendResult{
		Backend: store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.DBPath)

	return &BackendResult{
		Backend: repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	store := memory.NewFromFile(config.SeedFile)

	f.logger.Info("Initialized memory backend", "seed_file", config.SeedFile)

	return &BackendResult{
		Backend: store,
		Cleanup: store.Close,
	}, nil
}

// attachMirrors adds the representations that are not authoritative for
// this backend type.
func (f *DefaultFactory) attachMirrors(ctx context.Context, config Config, result *BackendResult) error {
	mirrors := []ports.Mirror{adapters.NewCSVMirror(config.CSVPath)}

	if config.Type == SQLiteBackend {
		mirrors = append(mirrors, adapters.NewDocumentMirror(storage.NewDocumentStore(config.DocumentPath)))
	} else {
		repo, err := storage.NewSQLiteRepository(config.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize SQLite mirror: %w", err)
		}
		mirror := adapters.NewSQLiteMirror(repo)
		mirrors = append(mirrors, mirror)

		cleanup := result.Cleanup
		result.Cleanup = func() error {
			err := mirror.Close()
			if cleanup != nil {
				if cerr := cleanup(); cerr != nil && err == nil {
					err = cerr
				}
			}
			return err
		}
	}

	result.Mirrors = mirrors

	names := make([]string, len(mirrors))
	for i, m := range mirrors {
		names[i] = m.Name()
	}
	f.logger.InfoContext(ctx, "Mirroring enabled", "backend", config.Type, "mirrors", names)
	return nil
}
