package memrepo

import (
	"context"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var (
	_ repository.FinishedProductRepository   = (*FinishedProducts)(nil)
	_ repository.ProductionOrderRepository   = (*Orders)(nil)
	_ repository.InventoryMovementRepository = (*Movements)(nil)
)

// FinishedProducts productos terminados en memoria.
type FinishedProducts struct {
	ByID map[string]*entity.FinishedProduct
}

// NewFinishedProducts crea el repositorio con los productos dados.
func NewFinishedProducts(fps ...*entity.FinishedProduct) *FinishedProducts {
	m := &FinishedProducts{ByID: map[string]*entity.FinishedProduct{}}
	for _, fp := range fps {
		m.ByID[fp.ID] = fp
	}
	return m
}

func copyFP(fp *entity.FinishedProduct) *entity.FinishedProduct {
	cp := *fp
	cp.Lines = append([]entity.BOMLine(nil), fp.Lines...)
	return &cp
}

func (m *FinishedProducts) Create(_ context.Context, fp *entity.FinishedProduct) error {
	for _, other := range m.ByID {
		if other.CompanyID == fp.CompanyID && other.Code == fp.Code {
			return domain.ErrDuplicate
		}
	}
	m.ByID[fp.ID] = copyFP(fp)
	return nil
}

func (m *FinishedProducts) GetByID(_ context.Context, id string) (*entity.FinishedProduct, error) {
	fp, ok := m.ByID[id]
	if !ok {
		return nil, nil
	}
	return copyFP(fp), nil
}

// Update no toca las líneas (ver ReplaceLines).
func (m *FinishedProducts) Update(_ context.Context, fp *entity.FinishedProduct) error {
	stored, ok := m.ByID[fp.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := copyFP(fp)
	cp.Lines = stored.Lines
	m.ByID[fp.ID] = cp
	return nil
}

func (m *FinishedProducts) ReplaceLines(_ context.Context, id string, lines []entity.BOMLine) error {
	fp, ok := m.ByID[id]
	if !ok {
		return domain.ErrNotFound
	}
	fp.Lines = append([]entity.BOMLine(nil), lines...)
	return nil
}

func (m *FinishedProducts) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.FinishedProduct, error) {
	var out []*entity.FinishedProduct
	for _, fp := range m.ByID {
		if fp.CompanyID == companyID {
			out = append(out, copyFP(fp))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

func (m *FinishedProducts) Delete(_ context.Context, id string) error {
	delete(m.ByID, id)
	return nil
}

// Orders órdenes de producción en memoria.
type Orders struct {
	ByID map[string]*entity.ProductionOrder
}

// NewOrders crea el repositorio vacío.
func NewOrders() *Orders {
	return &Orders{ByID: map[string]*entity.ProductionOrder{}}
}

func (m *Orders) Create(_ context.Context, o *entity.ProductionOrder) error {
	cp := *o
	m.ByID[o.ID] = &cp
	return nil
}

func (m *Orders) GetByID(_ context.Context, id string) (*entity.ProductionOrder, error) {
	o, ok := m.ByID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *Orders) UpdateStatus(_ context.Context, o *entity.ProductionOrder, from string) error {
	stored, ok := m.ByID[o.ID]
	if !ok || stored.Status != from {
		return domain.ErrConflict
	}
	cp := *o
	m.ByID[o.ID] = &cp
	return nil
}

func (m *Orders) ListByCompany(_ context.Context, companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range m.ByID {
		if o.CompanyID == companyID && (status == "" || o.Status == status) {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (m *Orders) CountByStatus(ctx context.Context, companyID, status string) (int, error) {
	l, _ := m.ListByCompany(ctx, companyID, status, 0, 0)
	return len(l), nil
}

// Movements kardex en memoria (orden de inserción).
type Movements struct {
	List []*entity.InventoryMovement
}

func (m *Movements) Create(_ context.Context, mov *entity.InventoryMovement) error {
	m.List = append(m.List, mov)
	return nil
}

func (m *Movements) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for i := len(m.List) - 1; i >= 0; i-- {
		if m.List[i].ProductID == productID {
			out = append(out, m.List[i])
		}
	}
	return page(out, limit, offset), nil
}

func (m *Movements) ListByTransaction(_ context.Context, txID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, mov := range m.List {
		if mov.TransactionID == txID {
			out = append(out, mov)
		}
	}
	return out, nil
}
