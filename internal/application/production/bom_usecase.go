package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	feasibility "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// BOMUseCase CRUD de productos terminados y su receta.
type BOMUseCase struct {
	fpRepo      repository.FinishedProductRepository
	productRepo repository.ProductRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(fpRepo repository.FinishedProductRepository, productRepo repository.ProductRepository) *BOMUseCase {
	return &BOMUseCase{fpRepo: fpRepo, productRepo: productRepo}
}

// Create valida la receta (componentes existentes de la misma empresa) y persiste.
func (uc *BOMUseCase) Create(ctx context.Context, companyID string, in dto.CreateFinishedProductRequest) (*dto.FinishedProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	fp := &entity.FinishedProduct{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		Code:        code,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	fp.Lines = toBOMLines(fp.ID, in.Lines)
	components, err := uc.checkLines(ctx, companyID, fp.Lines)
	if err != nil {
		return nil, err
	}
	if err := uc.fpRepo.Create(ctx, fp); err != nil {
		return nil, err
	}
	return toFinishedProductResponse(fp, components), nil
}

// Get devuelve el producto terminado con disponibilidad de cada componente y su máximo fabricable.
func (uc *BOMUseCase) Get(ctx context.Context, companyID, id string) (*dto.FinishedProductResponse, error) {
	fp, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	components, err := loadComponents(ctx, uc.productRepo, companyID, fp.Lines)
	if err != nil {
		return nil, err
	}
	return toFinishedProductResponse(fp, components), nil
}

// List lista los productos terminados de la empresa.
func (uc *BOMUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.FinishedProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.fpRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	var all []entity.BOMLine
	for _, fp := range list {
		all = append(all, fp.Lines...)
	}
	components, err := loadComponents(ctx, uc.productRepo, companyID, all)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FinishedProductResponse, 0, len(list))
	for _, fp := range list {
		items = append(items, *toFinishedProductResponse(fp, components))
	}
	return &dto.FinishedProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza los datos y, si Lines no es nil, reemplaza la receta completa.
func (uc *BOMUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateFinishedProductRequest) (*dto.FinishedProductResponse, error) {
	fp, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		fp.Name = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		if strings.TrimSpace(*in.Code) == "" {
			return nil, domain.ErrInvalidInput
		}
		fp.Code = strings.TrimSpace(*in.Code)
	}
	if in.Description != nil {
		fp.Description = *in.Description
	}
	if in.Lines != nil {
		lines := toBOMLines(fp.ID, in.Lines)
		if _, err := uc.checkLines(ctx, companyID, lines); err != nil {
			return nil, err
		}
		if err := uc.fpRepo.ReplaceLines(ctx, fp.ID, lines); err != nil {
			return nil, err
		}
		fp.Lines = lines
	}
	fp.UpdatedAt = time.Now()
	if err := uc.fpRepo.Update(ctx, fp); err != nil {
		return nil, err
	}
	components, err := loadComponents(ctx, uc.productRepo, companyID, fp.Lines)
	if err != nil {
		return nil, err
	}
	return toFinishedProductResponse(fp, components), nil
}

// Delete elimina el producto terminado y su receta.
func (uc *BOMUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.fpRepo.Delete(ctx, id)
}

func (uc *BOMUseCase) load(ctx context.Context, companyID, id string) (*entity.FinishedProduct, error) {
	fp, err := uc.fpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fp == nil || fp.CompanyID != companyID {
		return nil, domain.ErrUnknownProduct
	}
	return fp, nil
}

func (uc *BOMUseCase) checkLines(ctx context.Context, companyID string, lines []entity.BOMLine) (map[string]*entity.Product, error) {
	if err := feasibility.ValidateBOM(lines); err != nil {
		return nil, err
	}
	components, err := loadComponents(ctx, uc.productRepo, companyID, lines)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if _, ok := components[l.ComponentID]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownComponent, l.ComponentID)
		}
	}
	return components, nil
}

func toBOMLines(fpID string, in []dto.BOMLineRequest) []entity.BOMLine {
	lines := make([]entity.BOMLine, 0, len(in))
	for i, l := range in {
		lines = append(lines, entity.BOMLine{
			FinishedProductID: fpID,
			ComponentID:       strings.TrimSpace(l.ComponentID),
			QuantityPerUnit:   l.QuantityPerUnit,
			Process:           l.Process,
			Position:          i,
		})
	}
	return lines
}

// loadComponents trae los productos referenciados por las líneas, indexados por id.
// Componentes de otra empresa no aparecen en el mapa.
func loadComponents(ctx context.Context, repo repository.ProductRepository, companyID string, lines []entity.BOMLine) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	if len(lines) == 0 {
		return out, nil
	}
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ComponentID] {
			seen[l.ComponentID] = true
			ids = append(ids, l.ComponentID)
		}
	}
	products, err := repo.ListByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.CompanyID == companyID {
			out[p.ID] = p
		}
	}
	return out, nil
}

func onHandOf(components map[string]*entity.Product) map[string]int {
	onHand := make(map[string]int, len(components))
	for id, p := range components {
		onHand[id] = p.Quantity
	}
	return onHand
}

func toFinishedProductResponse(fp *entity.FinishedProduct, components map[string]*entity.Product) *dto.FinishedProductResponse {
	lines := make([]dto.BOMLineResponse, 0, len(fp.Lines))
	for _, l := range fp.Lines {
		line := dto.BOMLineResponse{
			ComponentID:     l.ComponentID,
			QuantityPerUnit: l.QuantityPerUnit,
			Process:         l.Process,
		}
		if p, ok := components[l.ComponentID]; ok {
			line.ComponentName = p.Name
			line.ComponentUnit = p.Unit
			line.Available = p.Quantity
		}
		lines = append(lines, line)
	}
	return &dto.FinishedProductResponse{
		ID:            fp.ID,
		Name:          fp.Name,
		Code:          fp.Code,
		Description:   fp.Description,
		Lines:         lines,
		MaxProducible: feasibility.MaxProducible(fp.Lines, onHandOf(components)),
		CreatedAt:     fp.CreatedAt,
		UpdatedAt:     fp.UpdatedAt,
	}
}
