package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/testutil/memrepo"
)

func TestGenerateReplenishmentList(t *testing.T) {
	products := memrepo.NewProducts(
		// bajo mínimo hoy
		&entity.Product{ID: "a", CompanyID: "c1", SKU: "A", Quantity: 2, MinStock: 10, PurchasePrice: decimal.NewFromInt(5)},
		// sobre el mínimo pero una orden pendiente lo deja corto
		&entity.Product{ID: "b", CompanyID: "c1", SKU: "B", Quantity: 20, MinStock: 10, PurchasePrice: decimal.NewFromInt(1)},
		// holgado
		&entity.Product{ID: "c", CompanyID: "c1", SKU: "C", Quantity: 100, MinStock: 10},
	)
	finished := memrepo.NewFinishedProducts(&entity.FinishedProduct{ID: "fp", CompanyID: "c1", Code: "FP", Lines: []entity.BOMLine{
		{ComponentID: "b", QuantityPerUnit: 3},
		{ComponentID: "c", QuantityPerUnit: 1},
	}})
	orders := memrepo.NewOrders()
	require.NoError(t, orders.Create(context.Background(), &entity.ProductionOrder{
		ID: "o1", CompanyID: "c1", FinishedProductID: "fp", Quantity: 4, Status: entity.ProductionStatusPending, CreatedAt: time.Now(),
	}))

	uc := inventory.NewReplenishmentUseCase(products, orders, finished)
	list, err := uc.GenerateReplenishmentList(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "A", list[0].SKU)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 15, list[0].IdealStock)
	assert.Equal(t, 13, list[0].SuggestedOrderQty)
	assert.True(t, list[0].EstimatedOrderCost.Equal(decimal.NewFromInt(65)))

	assert.Equal(t, "B", list[1].SKU)
	assert.Equal(t, 12, list[1].ReservedForOrders)
	assert.Equal(t, 7, list[1].SuggestedOrderQty)
}

func TestGenerateReplenishmentList_Empty(t *testing.T) {
	uc := inventory.NewReplenishmentUseCase(memrepo.NewProducts(), memrepo.NewOrders(), memrepo.NewFinishedProducts())
	list, err := uc.GenerateReplenishmentList(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
