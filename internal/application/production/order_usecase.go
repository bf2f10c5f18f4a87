package production

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	feasibility "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// OrderUseCase órdenes de producción: factibilidad, creación, cierre con consumo y cancelación.
type OrderUseCase struct {
	txRunner    TxRunner
	fpRepo      repository.FinishedProductRepository
	productRepo repository.ProductRepository
	orderRepo   repository.ProductionOrderRepository
	log         zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	fpRepo repository.FinishedProductRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.ProductionOrderRepository,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		fpRepo:      fpRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		log:         log,
	}
}

// Feasibility calcula el máximo fabricable y los faltantes para fabricar q unidades.
func (uc *OrderUseCase) Feasibility(ctx context.Context, companyID, finishedProductID string, q int) (*dto.FeasibilityResponse, error) {
	if q < 0 || q > feasibility.MaxQuantity {
		return nil, fmt.Errorf("%w: cantidad fuera de rango (0..%d)", domain.ErrInvalidInput, feasibility.MaxQuantity)
	}
	fp, err := uc.loadFinished(ctx, companyID, finishedProductID)
	if err != nil {
		return nil, err
	}
	components, err := loadComponents(ctx, uc.productRepo, companyID, fp.Lines)
	if err != nil {
		return nil, err
	}
	res := feasibility.AnalyzeFor(fp.Lines, onHandOf(components), q)
	return &dto.FeasibilityResponse{
		FinishedProductID: fp.ID,
		Requested:         q,
		MaxProducible:     res.MaxProducible,
		Feasible:          len(res.Shortages) == 0 && q <= res.MaxProducible,
		Shortages:         res.Shortages,
	}, nil
}

// CreateOrder crea una orden pendiente. Si la cantidad supera lo fabricable devuelve
// *production.ShortageError (envuelve ErrInsufficientStock) y no persiste nada.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if in.FinishedProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.Quantity > feasibility.MaxQuantity {
		return nil, fmt.Errorf("%w: cantidad fuera de rango (1..%d)", domain.ErrInvalidInput, feasibility.MaxQuantity)
	}
	fp, err := uc.loadFinished(ctx, companyID, in.FinishedProductID)
	if err != nil {
		return nil, err
	}
	if len(fp.Lines) == 0 {
		return nil, fmt.Errorf("%w: %s no tiene receta", domain.ErrUnknownProduct, fp.Code)
	}
	components, err := loadComponents(ctx, uc.productRepo, companyID, fp.Lines)
	if err != nil {
		return nil, err
	}
	if short := feasibility.Shortages(fp.Lines, onHandOf(components), in.Quantity); len(short) > 0 {
		return nil, &feasibility.ShortageError{Shortages: short}
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		FinishedProductID: fp.ID,
		Quantity:          in.Quantity,
		Status:            entity.ProductionStatusPending,
		Notes:             in.Notes,
		DueDate:           in.DueDate,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order, fp.Name), nil
}

// CompleteOrder consume los componentes de la receta y cierra la orden.
// Todo ocurre en una transacción con las filas de los componentes bloqueadas:
// si algún componente quedaría negativo no cambia nada.
func (uc *OrderUseCase) CompleteOrder(ctx context.Context, companyID, userID, orderID string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.loadOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.ProductionStatusPending {
		return nil, domain.ErrConflict
	}
	fp, err := uc.loadFinished(ctx, companyID, order.FinishedProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.RunProduction(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		// La transición va primero: bloquea la orden y descarta una segunda finalización.
		order.Status = entity.ProductionStatusCompleted
		order.CompletedAt = &now
		order.UpdatedAt = now
		if err := orderRepo.UpdateStatus(ctx, order, entity.ProductionStatusPending); err != nil {
			return err
		}

		// Bloqueo en orden de id para no cruzarse con otra orden que comparta componentes.
		ids := make([]string, 0, len(fp.Lines))
		for _, l := range fp.Lines {
			ids = append(ids, l.ComponentID)
		}
		sort.Strings(ids)
		locked := make(map[string]*entity.Product, len(ids))
		for _, id := range ids {
			if _, ok := locked[id]; ok {
				continue
			}
			p, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil || p.CompanyID != companyID {
				return fmt.Errorf("%w: %s", domain.ErrUnknownComponent, id)
			}
			locked[id] = p
		}

		plan, err := feasibility.PlanConsumption(fp.Lines, onHandOf(locked), order.Quantity)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := productRepo.UpdateQuantity(ctx, id, plan[id]); err != nil {
				return err
			}
		}
		for _, l := range fp.Lines {
			used := l.QuantityPerUnit * order.Quantity
			cost := locked[l.ComponentID].PurchasePrice
			mov := &entity.InventoryMovement{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				TransactionID: order.ID,
				ProductID:     l.ComponentID,
				Type:          entity.MovementTypePRODUCTION,
				Quantity:      -used,
				UnitCost:      cost,
				TotalCost:     cost.Mul(decimal.NewFromInt(int64(-used))),
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		order.Status = entity.ProductionStatusPending
		order.CompletedAt = nil
		return nil, err
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("finished_product", fp.Code).
		Int("quantity", order.Quantity).
		Msg("orden de producción completada")
	return toOrderResponse(order, fp.Name), nil
}

// CancelOrder cancela una orden pendiente. No toca inventario.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, companyID, orderID string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.loadOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.ProductionStatusPending {
		return nil, domain.ErrConflict
	}
	order.Status = entity.ProductionStatusCancelled
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateStatus(ctx, order, entity.ProductionStatusPending); err != nil {
		return nil, err
	}
	return toOrderResponse(order, ""), nil
}

// GetOrder devuelve una orden de la empresa.
func (uc *OrderUseCase) GetOrder(ctx context.Context, companyID, orderID string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.loadOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	name := ""
	if fp, _ := uc.fpRepo.GetByID(ctx, order.FinishedProductID); fp != nil {
		name = fp.Name
	}
	return toOrderResponse(order, name), nil
}

// ListOrders lista órdenes; status vacío = todas.
func (uc *OrderUseCase) ListOrders(ctx context.Context, companyID, status string, page dto.PageRequest) (*dto.ProductionOrderListResponse, error) {
	switch status {
	case "", entity.ProductionStatusPending, entity.ProductionStatusCompleted, entity.ProductionStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.orderRepo.ListByCompany(ctx, companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, ""))
	}
	return &dto.ProductionOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *OrderUseCase) loadFinished(ctx context.Context, companyID, id string) (*entity.FinishedProduct, error) {
	fp, err := uc.fpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fp == nil || fp.CompanyID != companyID {
		return nil, domain.ErrUnknownProduct
	}
	return fp, nil
}

func (uc *OrderUseCase) loadOrder(ctx context.Context, companyID, id string) (*entity.ProductionOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func toOrderResponse(o *entity.ProductionOrder, fpName string) *dto.ProductionOrderResponse {
	return &dto.ProductionOrderResponse{
		ID:                  o.ID,
		FinishedProductID:   o.FinishedProductID,
		FinishedProductName: fpName,
		Quantity:            o.Quantity,
		Status:              o.Status,
		Notes:               o.Notes,
		DueDate:             o.DueDate,
		CompletedAt:         o.CompletedAt,
		CreatedBy:           o.CreatedBy,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}
