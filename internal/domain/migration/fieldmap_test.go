package migration_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/migration"
)

const companyID = "00000000-0000-0000-0000-0000000000aa"

func TestMapRecord_CostPriceAPurchasePrice(t *testing.T) {
	recs, err := migration.DecodeSnapshot([]byte(`[{"id":"17","name":"Tornillo 3/8","code":"TOR-38","quantity":120,"minStock":20,"costPrice":150.5,"salePrice":"300"}]`))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	p, err := migration.MapRecord(companyID, 0, recs[0])
	require.NoError(t, err)
	assert.Equal(t, companyID, p.CompanyID)
	assert.Equal(t, "17", p.LegacyID)
	assert.Equal(t, "TOR-38", p.SKU)
	assert.Equal(t, "Tornillo 3/8", p.Name)
	assert.Equal(t, 120, p.Quantity)
	assert.Equal(t, 20, p.MinStock)
	assert.True(t, p.PurchasePrice.Equal(decimal.RequireFromString("150.5")))
	assert.True(t, p.SalePrice.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "un", p.Unit)
	assert.NotEmpty(t, p.ID)
}

func TestMapRecord_NombresSnakeYMayusculas(t *testing.T) {
	p, err := migration.MapRecord(companyID, 0, migration.LegacyRecord{
		"Name":           "Pintura",
		"purchase_price": "12,50",
		"MIN_STOCK":      3,
	})
	require.NoError(t, err)
	assert.True(t, p.PurchasePrice.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 3, p.MinStock)
}

func TestMapRecord_AliasEnConflictoEsDeterminista(t *testing.T) {
	rec := migration.LegacyRecord{"cost_price": "7", "costPrice": "5", "CostPrice": "9", "Cost_Price": "11"}
	for i := 0; i < 50; i++ {
		p, err := migration.MapRecord(companyID, 0, withName(rec))
		require.NoError(t, err)
		assert.Equal(t, "5", p.PurchasePrice.String(), "gana el primer alias de la tabla con clave idéntica")
	}

	// sin clave idéntica gana la primera en orden alfabético entre las plegadas
	rec = migration.LegacyRecord{"Cost_Price": "11", "COSTPRICE": "3"}
	for i := 0; i < 50; i++ {
		p, err := migration.MapRecord(companyID, 0, withName(rec))
		require.NoError(t, err)
		assert.Equal(t, "3", p.PurchasePrice.String())
	}
}

func withName(rec migration.LegacyRecord) migration.LegacyRecord {
	out := migration.LegacyRecord{"name": "Tornillo"}
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func TestMapRecord_SKUGenerado(t *testing.T) {
	p, err := migration.MapRecord(companyID, 4, migration.LegacyRecord{"name": "Lija"})
	require.NoError(t, err)
	assert.Equal(t, "LEG-0005", p.SKU)

	p, err = migration.MapRecord(companyID, 4, migration.LegacyRecord{"name": "Lija", "id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "LEG-abc", p.SKU)
}

func TestMapRecord_Validaciones(t *testing.T) {
	cases := []struct {
		name string
		rec  migration.LegacyRecord
	}{
		{"sin nombre", migration.LegacyRecord{"code": "X"}},
		{"nombre vacío", migration.LegacyRecord{"name": "   "}},
		{"cantidad negativa", migration.LegacyRecord{"name": "A", "quantity": -1.0}},
		{"cantidad fraccionaria", migration.LegacyRecord{"name": "A", "quantity": 1.5}},
		{"precio no numérico", migration.LegacyRecord{"name": "A", "costPrice": "abc"}},
		{"nombre con tipo inválido", migration.LegacyRecord{"name": []any{"x"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := migration.MapRecord(companyID, 0, tc.rec)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestDecodeSnapshot(t *testing.T) {
	recs, err := migration.DecodeSnapshot(nil)
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = migration.DecodeSnapshot([]byte(`{"no":"es un arreglo"}`))
	assert.Error(t, err)
}
