package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// PurchaseOrderUseCase órdenes de compra: creación, recepción (entrada de stock) y cancelación.
type PurchaseOrderUseCase struct {
	txRunner     TxRunner
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	log          zerolog.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

// Create valida proveedor y productos de la empresa, calcula subtotales y persiste la orden pendiente.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	ids := make([]string, 0, len(in.Lines))
	seen := make(map[string]bool, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if seen[l.ProductID] {
			return nil, fmt.Errorf("%w: producto %s repetido", domain.ErrDuplicate, l.ProductID)
		}
		seen[l.ProductID] = true
		ids = append(ids, l.ProductID)
	}
	products, err := uc.productRepo.ListByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	number, err := uc.poRepo.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		SupplierID: supplier.ID,
		Number:     number,
		Status:     entity.PurchaseStatusPending,
		Total:      decimal.Zero,
		Notes:      in.Notes,
		ExpectedAt: in.ExpectedAt,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, l := range in.Lines {
		if _, ok := byID[l.ProductID]; !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
		}
		sub := l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{
			PurchaseOrderID: po.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitCost:        l.UnitCost,
			Subtotal:        sub,
		})
		po.Total = po.Total.Add(sub)
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	return toResponse(po, byID), nil
}

// Receive da entrada al stock de todas las líneas con su costo (promedio ponderado) y marca la orden
// como recibida. Todo en una sola transacción: si una línea falla no entra ninguna.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, companyID, userID, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.PurchaseStatusPending {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po.Status = entity.PurchaseStatusReceived
		po.ReceivedAt = &now
		po.UpdatedAt = now
		if err := poRepo.UpdateStatus(ctx, po, entity.PurchaseStatusPending); err != nil {
			return err
		}
		for _, l := range po.Lines {
			if _, err := inventory.ApplyIN(ctx, movRepo, productRepo, companyID, l.ProductID, userID,
				entity.MovementTypePURCHASE, l.Quantity, l.UnitCost, now, po.ID); err != nil {
				return fmt.Errorf("línea %s: %w", l.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		po.Status = entity.PurchaseStatusPending
		po.ReceivedAt = nil
		return nil, err
	}
	uc.log.Info().Str("purchase_order", po.Number).Int("lines", len(po.Lines)).Msg("orden de compra recibida")
	return toResponse(po, uc.productsOf(ctx, companyID, po)), nil
}

// Cancel cancela una orden pendiente.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.PurchaseStatusPending {
		return nil, domain.ErrConflict
	}
	po.Status = entity.PurchaseStatusCancelled
	po.UpdatedAt = time.Now()
	if err := uc.poRepo.UpdateStatus(ctx, po, entity.PurchaseStatusPending); err != nil {
		return nil, err
	}
	return toResponse(po, nil), nil
}

// Get devuelve la orden con el nombre de cada producto.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toResponse(po, uc.productsOf(ctx, companyID, po)), nil
}

// List lista órdenes; status vacío = todas.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, companyID, status string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	switch status {
	case "", entity.PurchaseStatusPending, entity.PurchaseStatusReceived, entity.PurchaseStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.poRepo.ListByCompany(ctx, companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toResponse(po, nil))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *PurchaseOrderUseCase) load(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil || po.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

// productsOf best-effort: si falla la consulta las líneas salen sin nombre.
func (uc *PurchaseOrderUseCase) productsOf(ctx context.Context, companyID string, po *entity.PurchaseOrder) map[string]*entity.Product {
	ids := make([]string, 0, len(po.Lines))
	for _, l := range po.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := uc.productRepo.ListByIDs(ctx, companyID, ids)
	if err != nil {
		uc.log.Warn().Err(err).Str("purchase_order", po.ID).Msg("no se pudieron cargar los productos")
		return nil
	}
	out := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out
}

func toResponse(po *entity.PurchaseOrder, products map[string]*entity.Product) *dto.PurchaseOrderResponse {
	lines := make([]dto.PurchaseOrderLineResponse, 0, len(po.Lines))
	for _, l := range po.Lines {
		line := dto.PurchaseOrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			Subtotal:  l.Subtotal,
		}
		if p, ok := products[l.ProductID]; ok {
			line.ProductName = p.Name
		}
		lines = append(lines, line)
	}
	return &dto.PurchaseOrderResponse{
		ID:         po.ID,
		Number:     po.Number,
		SupplierID: po.SupplierID,
		Status:     po.Status,
		Total:      po.Total,
		Notes:      po.Notes,
		ExpectedAt: po.ExpectedAt,
		ReceivedAt: po.ReceivedAt,
		Lines:      lines,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
}
