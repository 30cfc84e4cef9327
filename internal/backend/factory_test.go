package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/config"
	"expenses/internal/core"
	"expenses/internal/storage"
)

func testConfig(t *testing.T, typ BackendType, mirror bool) Config {
	dir := t.TempDir()
	return Config{
		Type:          typ,
		DocumentPath:  filepath.Join(dir, "expenses.json"),
		DBPath:        filepath.Join(dir, "expenses.db"),
		CSVPath:       filepath.Join(dir, "expenses.csv"),
		MirrorOnWrite: mirror,
		SeedFile:      filepath.Join(dir, SeedFileName),
	}
}

func TestBackendTypeIsValid(t *testing.T) {
	for _, s := range GetBackendTypeStrings() {
		assert.True(t, BackendType(s).IsValid(), s)
	}
	assert.False(t, BackendType("sheets").IsValid())
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	app := &config.Config{DataDir: "/data", JSONPath: "e.json", CSVPath: "e.csv", DBPath: "e.db", Backend: "sqlite", MirrorOnWrite: true}
	cfg, err := FromAppConfig(app)
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.Equal(t, filepath.Join("/data", "e.json"), cfg.DocumentPath)
	assert.Equal(t, filepath.Join("/data", "e.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/data", SeedFileName), cfg.SeedFile)
	assert.True(t, cfg.MirrorOnWrite)

	app.Backend = "sheets"
	_, err = FromAppConfig(app)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Type: "x"}.Validate())
	assert.Error(t, Config{Type: JSONBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: MemoryBackend, MirrorOnWrite: true}.Validate())
}

func TestCreateEachBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	for _, typ := range GetBackendTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			res, err := f.CreateBackend(ctx, testConfig(t, typ, false))
			require.NoError(t, err)
			defer res.Cleanup()
			assert.Empty(t, res.Mirrors)

			e := core.Expense{Category: "Food", Amount: core.Money{Cents: 1250}, Date: "2024-01-01", Notes: "lunch"}
			_, err = res.Store().AppendAndPersist(ctx, e)
			require.NoError(t, err)

			got, err := res.Store().Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []core.Expense{e}, got)
		})
	}
}

func TestCreateJSONBackendWithMirrors(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, JSONBackend, true)

	res, err := NewFactory(nil).CreateBackend(ctx, cfg)
	require.NoError(t, err)
	defer res.Cleanup()

	names := []string{}
	for _, m := range res.Mirrors {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{storage.StoreTabular, storage.StoreRelational}, names)

	s := res.Store()
	require.NoError(t, s.EnsureSchema(ctx))
	_, err = s.AppendAndPersist(ctx, core.Expense{Category: "Food", Amount: core.Money{Cents: 500}, Date: "2024-01-01"})
	require.NoError(t, err)

	_, err = os.Stat(cfg.CSVPath)
	assert.NoError(t, err)
}

func TestCreateSQLiteBackendWithMirrors(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, SQLiteBackend, true)

	res, err := NewFactory(nil).CreateBackend(ctx, cfg)
	require.NoError(t, err)
	defer res.Cleanup()

	e := core.Expense{Category: "Bills", Amount: core.Money{Cents: 4000}, Date: "2024-02-01"}
	_, err = res.Store().AppendAndPersist(ctx, e)
	require.NoError(t, err)

	doc, err := storage.NewDocumentStore(cfg.DocumentPath).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Expense{e}, doc)
}

func TestMemoryBackendSeed(t *testing.T) {
	cfg := testConfig(t, MemoryBackend, false)
	require.NoError(t, os.WriteFile(cfg.SeedFile, []byte("Food;1;2024-01-01;\n"), 0o644))

	res, err := NewFactory(nil).CreateBackend(context.Background(), cfg)
	require.NoError(t, err)

	got, err := res.Backend.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
