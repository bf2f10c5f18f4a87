package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// pendingOrdersScan tope de órdenes pendientes consideradas al reservar componentes.
const pendingOrdersScan = 500

// ReplenishmentUseCase genera la lista de reposición de componentes.
// Combina el stock actual con lo que consumirán las órdenes de producción pendientes.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	orderRepo   repository.ProductionOrderRepository
	fpRepo      repository.FinishedProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	orderRepo repository.ProductionOrderRepository,
	fpRepo repository.FinishedProductRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		fpRepo:      fpRepo,
	}
}

// GenerateReplenishmentList devuelve los productos que quedan bajo su mínimo (descontando lo reservado
// por órdenes pendientes) con la cantidad sugerida de pedido y un ranking de prioridad.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, companyID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	reserved, err := uc.reservedByPendingOrders(ctx, companyID)
	if err != nil {
		return nil, err
	}

	// 1. Candidatos: bajo mínimo hoy o con reservas que los dejarían bajo mínimo
	low, err := uc.productRepo.ListLowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	candidates := make(map[string]*entity.Product, len(low))
	for _, p := range low {
		candidates[p.ID] = p
	}
	var reservedIDs []string
	for id := range reserved {
		if _, ok := candidates[id]; !ok {
			reservedIDs = append(reservedIDs, id)
		}
	}
	if len(reservedIDs) > 0 {
		extra, err := uc.productRepo.ListByIDs(ctx, companyID, reservedIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range extra {
			if p.Quantity-reserved[p.ID] <= p.MinStock {
				candidates[p.ID] = p
			}
		}
	}
	if len(candidates) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Cantidad sugerida: llevar el stock libre a 1.5 veces el mínimo
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(candidates))
	for _, p := range candidates {
		free := p.Quantity - reserved[p.ID]
		ideal := (p.MinStock*3 + 1) / 2
		if ideal < 1 {
			ideal = 1
		}
		qty := ideal - free
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			SupplierID:         p.SupplierID,
			SupplierName:       p.SupplierName,
			CurrentStock:       p.Quantity,
			MinStock:           p.MinStock,
			ReservedForOrders:  reserved[p.ID],
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           p.PurchasePrice,
			EstimatedOrderCost: p.PurchasePrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	// 3. Ordenar: mayor déficit relativo primero, luego mayor costo estimado, luego SKU
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra, rb := deficitRatio(a), deficitRatio(b)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		if !a.EstimatedOrderCost.Equal(b.EstimatedOrderCost) {
			return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
		}
		return a.SKU < b.SKU
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// reservedByPendingOrders suma el consumo de componentes de las órdenes pendientes.
func (uc *ReplenishmentUseCase) reservedByPendingOrders(ctx context.Context, companyID string) (map[string]int, error) {
	orders, err := uc.orderRepo.ListByCompany(ctx, companyID, entity.ProductionStatusPending, pendingOrdersScan, 0)
	if err != nil {
		return nil, err
	}
	reserved := make(map[string]int)
	recipes := make(map[string]*entity.FinishedProduct)
	for _, o := range orders {
		fp, ok := recipes[o.FinishedProductID]
		if !ok {
			if fp, err = uc.fpRepo.GetByID(ctx, o.FinishedProductID); err != nil {
				return nil, err
			}
			recipes[o.FinishedProductID] = fp
		}
		if fp == nil {
			continue
		}
		for _, l := range fp.Lines {
			reserved[l.ComponentID] += l.QuantityPerUnit * o.Quantity
		}
	}
	return reserved, nil
}

func deficitRatio(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if s.IdealStock == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.SuggestedOrderQty)).Div(decimal.NewFromInt(int64(s.IdealStock)))
}
