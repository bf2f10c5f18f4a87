package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Ordered(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.True(t, strings.HasPrefix(names[0], "000_"), "000 debe crear schema_migrations primero")
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestMigrations_DeclareCoreTables(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	var all strings.Builder
	for _, n := range names {
		b, err := migrationFiles.ReadFile("migrations/" + n)
		require.NoError(t, err)
		all.Write(b)
	}
	schema := all.String()
	for _, table := range []string{"products", "bom_lines", "production_orders", "inventory_movements", "purchase_orders", "company_settings"} {
		assert.Contains(t, schema, "CREATE TABLE "+table+" (")
	}
	assert.Contains(t, schema, "idx_products_legacy ON products (company_id, legacy_id)")
}
