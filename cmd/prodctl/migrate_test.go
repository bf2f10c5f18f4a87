package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/migration"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/localstore"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root, closeEnv := newRootCmd()
	t.Cleanup(closeEnv)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestMigrateImport_GuardaSnapshot(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "local.db")
	src := filepath.Join(dir, "productos.json")
	blob := `[{"id":"1","name":"Tornillo","costPrice":120},{"id":"2","name":"Tuerca","stock":40}]`
	require.NoError(t, os.WriteFile(src, []byte(blob), 0o644))

	require.NoError(t, runCLI(t, "migrate", "import", src, "--local-db", dbPath, "--company", "c1"))

	s, err := localstore.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.Read(context.Background(), migration.SlotKey(migration.DefaultSnapshotKey, "c1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, blob, string(got))

	_, ok, err = s.Read(context.Background(), migration.SlotKey(migration.DefaultSnapshotKey, "c2"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMigrateImport_ArchivoInvalido(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "roto.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"no":"es una lista"}`), 0o644))

	err := runCLI(t, "migrate", "import", src, "--local-db", filepath.Join(dir, "local.db"), "--company", "c1")
	assert.Error(t, err)
}

func TestMigrateRestore_SinRespaldo(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, runCLI(t, "migrate", "restore", "--local-db", filepath.Join(dir, "local.db"), "--company", "c1"))
}

func TestMigrateImport_SinEmpresa(t *testing.T) {
	t.Setenv("MIGRATION_COMPANY_ID", "")
	dir := t.TempDir()
	src := filepath.Join(dir, "productos.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id":"1","name":"Tornillo"}]`), 0o644))

	err := runCLI(t, "migrate", "import", src, "--local-db", filepath.Join(dir, "local.db"))
	assert.ErrorContains(t, err, "--company")
}

func TestLocalLs(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "local.db")
	s, err := localstore.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), "products", []byte("[]")))
	require.NoError(t, s.Close())

	assert.NoError(t, runCLI(t, "local", "ls", "--local-db", dbPath))
}
