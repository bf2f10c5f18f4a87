package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 u a 100 + 10 u a 200 → 150
	got := inventory.CostCalculator(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200))
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "got %s", got)
}

func TestCostCalculator_SinStockPrevio(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.Zero, 5, decimal.NewFromFloat(12.5))
	assert.True(t, got.Equal(decimal.NewFromFloat(12.5)), "got %s", got)
}

func TestCostCalculator_CantidadCero(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.NewFromInt(10), 0, decimal.NewFromInt(10))
	assert.True(t, got.IsZero())
}
