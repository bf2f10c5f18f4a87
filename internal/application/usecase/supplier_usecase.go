package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/nit"
)

// SupplierUseCase CRUD de proveedores por empresa.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := normalizeSupplierTaxID(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applySupplier(s, in)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Get obtiene un proveedor de la empresa.
func (uc *SupplierUseCase) Get(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := normalizeSupplierTaxID(&in); err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	applySupplier(s, in)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un proveedor de la empresa.
func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) load(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func applySupplier(s *entity.Supplier, in dto.SupplierRequest) {
	s.Name = strings.TrimSpace(in.Name)
	s.TaxID = in.TaxID
	s.ContactName = in.ContactName
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	s.Notes = in.Notes
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		TaxID:       s.TaxID,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// normalizeSupplierTaxID el NIT/cédula del proveedor es opcional; si viene se normaliza.
func normalizeSupplierTaxID(in *dto.SupplierRequest) error {
	if strings.TrimSpace(in.TaxID) == "" {
		in.TaxID = ""
		return nil
	}
	taxID, err := nit.Normalize(in.TaxID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	in.TaxID = taxID
	return nil
}
