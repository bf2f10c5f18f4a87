package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/testutil/memrepo"
)

type stubAnalytics struct {
	totals  repository.InventoryTotals
	work    repository.OpenWork
	workErr error
}

func (s stubAnalytics) GetInventoryTotals(context.Context, string) (repository.InventoryTotals, error) {
	return s.totals, nil
}

func (s stubAnalytics) GetOpenWork(context.Context, string) (repository.OpenWork, error) {
	return s.work, s.workErr
}

func (s stubAnalytics) GetConsumption(context.Context, string, time.Time, time.Time, int) ([]repository.ConsumptionResult, error) {
	return nil, nil
}

func dashboardFixture() (*memrepo.FinishedProducts, *memrepo.Products) {
	products := memrepo.NewProducts(
		&entity.Product{ID: "tabla", CompanyID: "c1", SKU: "TAB", Quantity: 9},
		&entity.Product{ID: "tornillo", CompanyID: "c1", SKU: "TOR", Quantity: 100},
	)
	fps := memrepo.NewFinishedProducts(
		&entity.FinishedProduct{ID: "mesa", CompanyID: "c1", Name: "Mesa", Code: "MESA", Lines: []entity.BOMLine{
			{FinishedProductID: "mesa", ComponentID: "tabla", QuantityPerUnit: 4},
			{FinishedProductID: "mesa", ComponentID: "tornillo", QuantityPerUnit: 16},
		}},
		&entity.FinishedProduct{ID: "kit", CompanyID: "c1", Name: "Kit vacío", Code: "KIT"},
	)
	return fps, products
}

func TestDashboardUseCase_GetSummary(t *testing.T) {
	fps, products := dashboardFixture()
	stub := stubAnalytics{
		totals: repository.InventoryTotals{TotalProducts: 2, LowStockCount: 1, StockValue: decimal.RequireFromString("1234.567")},
		work:   repository.OpenWork{PendingProduction: 3, PendingPurchases: 1, UnreadAlerts: 4},
	}
	uc := NewDashboardUseCase(stub, fps, products)

	out, err := uc.GetSummary(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, "1234.57", out.StockValue.String())
	assert.Equal(t, 3, out.PendingProduction)
	assert.Equal(t, 4, out.UnreadAlerts)

	byID := map[string]int{}
	for _, p := range out.Producible {
		byID[p.FinishedProductID] = p.MaxProducible
	}
	assert.Equal(t, 2, byID["mesa"]) // min(9/4, 100/16) = min(2, 6)
	assert.Equal(t, 0, byID["kit"])
}

func TestDashboardUseCase_PropagatesErrors(t *testing.T) {
	fps, products := dashboardFixture()
	boom := errors.New("timeout")
	uc := NewDashboardUseCase(stubAnalytics{workErr: boom}, fps, products)

	_, err := uc.GetSummary(context.Background(), "c1")
	assert.ErrorIs(t, err, boom)
}
