package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos de stock. El costo promedio se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
	settingsRepo repository.SettingsRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository, settingsRepo repository.SettingsRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo, settingsRepo: settingsRepo}
}

// Create crea un nuevo producto. Si MinStock no viene se usa el umbral por defecto de la empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" || in.Quantity < 0 || in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	minStock, err := uc.minStock(ctx, companyID, in.MinStock)
	if err != nil {
		return nil, err
	}
	if in.Unit == "" {
		in.Unit = "un"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Unit:          in.Unit,
		Quantity:      in.Quantity,
		MinStock:      minStock,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.SupplierID != "" {
		if err := uc.attachSupplier(ctx, companyID, product, in.SupplierID); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar cantidad ni costo (se manejan vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.SupplierID != nil {
		if *in.SupplierID == "" {
			product.SupplierID, product.SupplierName = "", ""
		} else if err := uc.attachSupplier(ctx, companyID, product, *in.SupplierID); err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateQuantity fija la cantidad disponible (conteo físico). Cantidades negativas se rechazan.
func (uc *ProductUseCase) UpdateQuantity(ctx context.Context, companyID, id string, quantity int) (*dto.ProductResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateQuantity(ctx, id, quantity); err != nil {
		return nil, err
	}
	product.Quantity = quantity
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListLowStock productos en o por debajo de su stock mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, companyID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto de la empresa.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) load(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) attachSupplier(ctx context.Context, companyID string, p *entity.Product, supplierID string) error {
	s, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if s == nil || s.CompanyID != companyID {
		return domain.ErrNotFound
	}
	p.SupplierID = s.ID
	p.SupplierName = s.Name
	return nil
}

func (uc *ProductUseCase) minStock(ctx context.Context, companyID string, in *int) (int, error) {
	if in != nil {
		if *in < 0 {
			return 0, domain.ErrInvalidInput
		}
		return *in, nil
	}
	s, err := uc.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return 0, err
	}
	if s == nil {
		s = entity.DefaultSettings(companyID)
	}
	return s.DefaultMinStock, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Unit:          p.Unit,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		LowStock:      p.IsLowStock(),
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		LegacyID:      p.LegacyID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
