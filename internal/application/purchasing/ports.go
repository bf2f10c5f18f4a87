package purchasing

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta la recepción de una orden de compra dentro de una transacción.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}

// PurchaseLineForPDF línea del pedido enriquecida con datos del producto.
type PurchaseLineForPDF struct {
	entity.PurchaseOrderLine
	SKU         string
	ProductName string
	Unit        string
}

// PurchaseOrderPDFGenerator puerto de salida para el documento imprimible del pedido.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(
		ctx context.Context,
		po *entity.PurchaseOrder,
		company *entity.Company,
		supplier *entity.Supplier,
		lines []PurchaseLineForPDF,
	) ([]byte, error)
}
