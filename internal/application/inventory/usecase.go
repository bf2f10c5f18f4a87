package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// IN: Quantity > 0 y UnitCost obligatorio. OUT: Quantity > 0.
// ADJUSTMENT: Quantity con signo (positivo suma, negativo resta).
type MovementInputDTO struct {
	CompanyID string
	UserID    string
	ProductID string
	Type      string
	Quantity  int
	UnitCost  *decimal.Decimal
}

// RegisterMovement inicia una transacción, bloquea la fila del producto (SELECT FOR UPDATE),
// aplica la lógica según tipo y hace Commit o Rollback.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.InventoryMovement, error) {
	if input.ProductID == "" || input.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIN:
		if input.Quantity < 0 || input.UnitCost == nil || input.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if input.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.UnitCost != nil && input.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	// Validar que el producto exista y sea de la empresa
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	txID := uuid.New().String()

	var mov *entity.InventoryMovement
	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		switch input.Type {
		case entity.MovementTypeIN:
			mov, err = ApplyIN(ctx, movRepo, productRepo, input.CompanyID, input.ProductID, input.UserID, entity.MovementTypeIN, input.Quantity, *input.UnitCost, now, txID)
		case entity.MovementTypeOUT:
			mov, err = ApplyOUT(ctx, movRepo, productRepo, input.CompanyID, input.ProductID, input.UserID, entity.MovementTypeOUT, input.Quantity, now, txID)
		case entity.MovementTypeADJUSTMENT:
			mov, err = uc.doADJUSTMENT(ctx, movRepo, productRepo, input, now, txID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyIN bloquea la fila, recalcula el costo promedio ponderado, suma stock y guarda el movimiento.
// Se exporta para que otros casos de uso (recepción de compras) la usen dentro de su propia transacción.
func ApplyIN(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	companyID, productID, userID, movType string,
	quantity int, unitCost decimal.Decimal,
	now time.Time, txID string,
) (*entity.InventoryMovement, error) {
	// Bloquea la fila para evitar condiciones de carrera
	p, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	newCost := inventory.CostCalculator(p.Quantity, p.PurchasePrice, quantity, unitCost)
	if err := productRepo.UpdateCost(ctx, productID, newCost); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateQuantity(ctx, productID, p.Quantity+quantity); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		TransactionID: txID,
		ProductID:     productID,
		Type:          movType,
		Quantity:      quantity,
		UnitCost:      unitCost,
		TotalCost:     unitCost.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyOUT bloquea la fila, verifica stock suficiente, resta y guarda el movimiento al costo promedio actual.
func ApplyOUT(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	companyID, productID, userID, movType string,
	quantity int,
	now time.Time, txID string,
) (*entity.InventoryMovement, error) {
	p, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if p.Quantity < quantity {
		return nil, domain.ErrInsufficientStock
	}
	if err := productRepo.UpdateQuantity(ctx, productID, p.Quantity-quantity); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		TransactionID: txID,
		ProductID:     productID,
		Type:          movType,
		Quantity:      -quantity,
		UnitCost:      p.PurchasePrice,
		TotalCost:     p.PurchasePrice.Mul(decimal.NewFromInt(int64(-quantity))),
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// doADJUSTMENT: positivo como IN (costo opcional, por defecto el promedio actual), negativo como OUT.
func (uc *RegisterMovementUseCase) doADJUSTMENT(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInputDTO,
	now time.Time, txID string,
) (*entity.InventoryMovement, error) {
	if input.Quantity > 0 {
		var unitCost decimal.Decimal
		if input.UnitCost != nil {
			unitCost = *input.UnitCost
		} else {
			p, err := productRepo.GetForUpdate(ctx, input.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, domain.ErrNotFound
			}
			unitCost = p.PurchasePrice
		}
		return ApplyIN(ctx, movRepo, productRepo, input.CompanyID, input.ProductID, input.UserID, entity.MovementTypeADJUSTMENT, input.Quantity, unitCost, now, txID)
	}
	return ApplyOUT(ctx, movRepo, productRepo, input.CompanyID, input.ProductID, input.UserID, entity.MovementTypeADJUSTMENT, -input.Quantity, now, txID)
}

// ListMovements kardex de un producto de la empresa, más reciente primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, companyID, productID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMovementResponse(m))
	}
	return out, nil
}
