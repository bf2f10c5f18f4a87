package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "produccion-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "products", cfg.Migration.SnapshotKey)
	assert.Equal(t, "products_backup", cfg.Migration.BackupKey)
	assert.Equal(t, 10*time.Second, cfg.ERP.Timeout)
	assert.False(t, cfg.ERP.Enabled())
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MIGRATION_AUTO", "true")
	t.Setenv("MIGRATION_COMPANY_ID", "c1")
	t.Setenv("ERP_BASE_URL", "https://erp.local")
	t.Setenv("ERP_RATE_PER_SECOND", "2.5")
	t.Setenv("DB_FORCE_IPV4", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Migration.Auto)
	assert.Equal(t, "c1", cfg.Migration.CompanyID)
	assert.True(t, cfg.ERP.Enabled())
	assert.InDelta(t, 2.5, cfg.ERP.RatePerS, 0.001)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_AutoMigrationRequiresCompany(t *testing.T) {
	t.Setenv("MIGRATION_AUTO", "true")
	t.Setenv("MIGRATION_COMPANY_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "prod", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/prod?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
