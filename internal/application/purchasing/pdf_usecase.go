package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// PDFUseCase genera el documento imprimible de una orden de compra para enviar al proveedor.
type PDFUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	companyRepo  repository.CompanyRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	generator    PurchaseOrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	poRepo repository.PurchaseOrderRepository,
	companyRepo repository.CompanyRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	generator PurchaseOrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		poRepo:       poRepo,
		companyRepo:  companyRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadPurchaseOrderPDF recupera la orden, empresa, proveedor y productos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
//   - domain.ErrForbidden        si la orden no pertenece a la empresa del token.
//   - domain.ErrInvalidInput     si la orden está cancelada.
func (uc *PDFUseCase) DownloadPurchaseOrderPDF(ctx context.Context, companyID, id string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar orden ───────────────────────────────────────────────────────
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if po == nil {
		return nil, "", domain.ErrNotFound
	}
	if po.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	if po.Status == entity.PurchaseStatusCancelled {
		return nil, "", fmt.Errorf("%w: la orden %s está cancelada", domain.ErrInvalidInput, po.Number)
	}

	// ── 2. Empresa y proveedor ────────────────────────────────────────────────
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, po.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 3. Enriquecer líneas con el producto ──────────────────────────────────
	lines := make([]PurchaseLineForPDF, 0, len(po.Lines))
	for _, l := range po.Lines {
		line := PurchaseLineForPDF{PurchaseOrderLine: l, ProductName: "Producto " + l.ProductID}
		if p, pErr := uc.productRepo.GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			line.SKU = p.SKU
			line.ProductName = p.Name
			line.Unit = p.Unit
		}
		lines = append(lines, line)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GeneratePurchaseOrderPDF(ctx, po, company, supplier, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden_compra_%s.pdf", po.Number), nil
}
