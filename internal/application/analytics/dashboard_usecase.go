// Package analytics contiene el caso de uso del dashboard de inventario y producción.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// dashboardFinishedProducts número de productos terminados en el widget de fabricables.
const dashboardFinishedProducts = 50

// DashboardUseCase genera el resumen del inventario y la capacidad de producción.
//
// Fuente de datos: AnalyticsRepository para agregados; la factibilidad se calcula
// aquí con el stock actual de los componentes.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	fpRepo        repository.FinishedProductRepository
	productRepo   repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	fpRepo repository.FinishedProductRepository,
	productRepo repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, fpRepo: fpRepo, productRepo: productRepo}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
//
// Tres consultas en paralelo:
//  1. GetInventoryTotals → productos, stock bajo, valor del inventario
//  2. GetOpenWork        → órdenes pendientes y alertas sin leer
//  3. máximo fabricable  → por cada producto terminado
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	type totalsResult struct {
		totals repository.InventoryTotals
		err    error
	}
	type workResult struct {
		work repository.OpenWork
		err  error
	}
	type producibleResult struct {
		items []dto.ProducibleDTO
		err   error
	}

	totalsCh := make(chan totalsResult, 1)
	workCh := make(chan workResult, 1)
	prodCh := make(chan producibleResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetInventoryTotals(ctx, companyID)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		w, err := uc.analyticsRepo.GetOpenWork(ctx, companyID)
		workCh <- workResult{w, err}
	}()
	go func() {
		items, err := uc.producible(ctx, companyID)
		prodCh <- producibleResult{items, err}
	}()

	totals := <-totalsCh
	work := <-workCh
	prod := <-prodCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", totals.err)
	}
	if work.err != nil {
		return nil, fmt.Errorf("dashboard: pendientes: %w", work.err)
	}
	if prod.err != nil {
		return nil, fmt.Errorf("dashboard: fabricables: %w", prod.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:         totals.totals.TotalProducts,
		LowStockCount:         totals.totals.LowStockCount,
		StockValue:            totals.totals.StockValue.Round(2),
		PendingProduction:     work.work.PendingProduction,
		PendingPurchaseOrders: work.work.PendingPurchases,
		UnreadAlerts:          work.work.UnreadAlerts,
		Producible:            prod.items,
	}, nil
}

// producible calcula MaxProducible por producto terminado con una sola lectura de componentes.
func (uc *DashboardUseCase) producible(ctx context.Context, companyID string) ([]dto.ProducibleDTO, error) {
	fps, err := uc.fpRepo.ListByCompany(ctx, companyID, dashboardFinishedProducts, 0)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var ids []string
	for _, fp := range fps {
		for _, l := range fp.Lines {
			if !seen[l.ComponentID] {
				seen[l.ComponentID] = true
				ids = append(ids, l.ComponentID)
			}
		}
	}
	onHand := make(map[string]int, len(ids))
	if len(ids) > 0 {
		var components []*entity.Product
		if components, err = uc.productRepo.ListByIDs(ctx, companyID, ids); err != nil {
			return nil, err
		}
		for _, p := range components {
			onHand[p.ID] = p.Quantity
		}
	}
	out := make([]dto.ProducibleDTO, 0, len(fps))
	for _, fp := range fps {
		out = append(out, dto.ProducibleDTO{
			FinishedProductID: fp.ID,
			Name:              fp.Name,
			Code:              fp.Code,
			MaxProducible:     production.Analyze(fp.Lines, onHand).MaxProducible,
		})
	}
	return out, nil
}
