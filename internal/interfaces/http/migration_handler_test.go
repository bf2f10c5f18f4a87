package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/migration"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/localstore"
	apphttp "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Produccion-api/pkg/jwt"
)

type stubMigrator struct {
	companyID string
	status    migration.Status
	record    migration.MigrationRecord
	err       error
	restored  bool
	imported  []byte
}

func (s *stubMigrator) Status(context.Context) (migration.Status, error) { return s.status, s.err }
func (s *stubMigrator) Migrate(context.Context) (migration.MigrationRecord, error) {
	return s.record, s.err
}
func (s *stubMigrator) RestoreFromBackup(context.Context) (bool, error) { return s.restored, s.err }
func (s *stubMigrator) Import(_ context.Context, blob []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.imported = blob
	return strings.Count(string(blob), "{"), nil
}

func newMigrationApp(stub *stubMigrator) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		JWTSecret: testJWTSecret,
		Migrators: func(companyID string) apphttp.StockMigrator {
			stub.companyID = companyID
			return stub
		},
	})
	return app
}

func migrationRequest(t *testing.T, app *fiber.App, method, path, role, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMigrationHandler_Status(t *testing.T) {
	stub := &stubMigrator{status: migration.Status{NeedsMigration: true, LocalRecords: 3}}
	resp := migrationRequest(t, newMigrationApp(stub), http.MethodGet, "/api/migration/status", "admin", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.MigrationStatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.NeedsMigration)
	assert.Equal(t, 3, out.LocalRecords)
	assert.Equal(t, testCompanyID, stub.companyID)
}

func TestMigrationHandler_Run(t *testing.T) {
	t.Run("parcial", func(t *testing.T) {
		stub := &stubMigrator{record: migration.MigrationRecord{MigratedCount: 2, Errors: []string{"registro 3: campo name requerido"}}}
		resp := migrationRequest(t, newMigrationApp(stub), http.MethodPost, "/api/migration/run", "admin", "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out dto.MigrationResultResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.False(t, out.Success)
		assert.Equal(t, 2, out.MigratedCount)
		assert.Len(t, out.Errors, 1)
	})

	t.Run("remoto con datos", func(t *testing.T) {
		stub := &stubMigrator{
			record: migration.MigrationRecord{Errors: []string{"remote non-empty"}},
			err:    domain.ErrGuardViolation,
		}
		resp := migrationRequest(t, newMigrationApp(stub), http.MethodPost, "/api/migration/run", "admin", "")
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		var out dto.MigrationResultResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 0, out.MigratedCount)
		assert.Equal(t, []string{"remote non-empty"}, out.Errors)
	})

	t.Run("remoto caído", func(t *testing.T) {
		stub := &stubMigrator{err: fmt.Errorf("%w: timeout", domain.ErrRemoteUnavailable)}
		resp := migrationRequest(t, newMigrationApp(stub), http.MethodPost, "/api/migration/run", "admin", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestMigrationHandler_Restore(t *testing.T) {
	resp := migrationRequest(t, newMigrationApp(&stubMigrator{}), http.MethodPost, "/api/migration/restore", "admin", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp2 := migrationRequest(t, newMigrationApp(&stubMigrator{restored: true}), http.MethodPost, "/api/migration/restore", "admin", "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestMigrationHandler_Import(t *testing.T) {
	stub := &stubMigrator{}
	body := `[{"id":"1","name":"Tornillo"},{"id":"2","name":"Tuerca"}]`
	resp := migrationRequest(t, newMigrationApp(stub), http.MethodPost, "/api/migration/import", "admin", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, body, string(stub.imported))

	bad := &stubMigrator{err: fmt.Errorf("%w: snapshot local inválido", domain.ErrInvalidInput)}
	resp2 := migrationRequest(t, newMigrationApp(bad), http.MethodPost, "/api/migration/import", "admin", "{")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestMigrationHandler_SoloAdmin(t *testing.T) {
	resp := migrationRequest(t, newMigrationApp(&stubMigrator{}), http.MethodPost, "/api/migration/run", "produccion", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

type companyRemote struct {
	inserted []*entity.Product
}

func (r *companyRemote) Count(context.Context) (int, error) { return len(r.inserted), nil }
func (r *companyRemote) Insert(_ context.Context, p *entity.Product) error {
	r.inserted = append(r.inserted, p)
	return nil
}

func TestMigrationHandler_SnapshotPorEmpresa(t *testing.T) {
	local, err := localstore.Open(localstore.MemoryPath)
	require.NoError(t, err)
	defer local.Close()

	remotes := map[string]*companyRemote{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		JWTSecret: testJWTSecret,
		Migrators: func(companyID string) apphttp.StockMigrator {
			if remotes[companyID] == nil {
				remotes[companyID] = &companyRemote{}
			}
			return migration.NewMigrator(local, remotes[companyID], migration.Options{CompanyID: companyID}, zerolog.Nop())
		},
	})

	call := func(companyID, method, path, body string) *http.Response {
		tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: testUserID, CompanyID: companyID, Role: "admin"}, testIssuer, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	snapshot := `[{"id":"1","name":"Tornillo M4","stock":10},{"id":"2","name":"Tuerca M4"},{"id":"3","name":"Arandela"}]`
	resp := call("empresaA", http.MethodPost, "/api/migration/import", snapshot)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call("empresaB", http.MethodGet, "/api/migration/status", "")
	var st dto.MigrationStatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	resp.Body.Close()
	assert.Zero(t, st.LocalRecords)
	assert.False(t, st.NeedsMigration)

	resp = call("empresaB", http.MethodPost, "/api/migration/run", "")
	var out dto.MigrationResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Zero(t, out.MigratedCount)
	assert.Empty(t, remotes["empresaB"].inserted)

	resp = call("empresaB", http.MethodPost, "/api/migration/restore", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// la empresa dueña sí ve y migra su snapshot
	resp = call("empresaA", http.MethodPost, "/api/migration/run", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, 3, out.MigratedCount)
	require.Len(t, remotes["empresaA"].inserted, 3)
	assert.Equal(t, "empresaA", remotes["empresaA"].inserted[0].CompanyID)
}
