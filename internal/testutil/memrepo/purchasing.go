package memrepo

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository      = (*Suppliers)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrders)(nil)
)

// Suppliers proveedores en memoria.
type Suppliers struct {
	ByID map[string]*entity.Supplier
}

// NewSuppliers crea el repositorio con los proveedores dados.
func NewSuppliers(ss ...*entity.Supplier) *Suppliers {
	m := &Suppliers{ByID: map[string]*entity.Supplier{}}
	for _, s := range ss {
		m.ByID[s.ID] = s
	}
	return m
}

func (m *Suppliers) Create(_ context.Context, s *entity.Supplier) error {
	cp := *s
	m.ByID[s.ID] = &cp
	return nil
}

func (m *Suppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := m.ByID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *Suppliers) Update(_ context.Context, s *entity.Supplier) error {
	if _, ok := m.ByID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	m.ByID[s.ID] = &cp
	return nil
}

func (m *Suppliers) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range m.ByID {
		if s.CompanyID == companyID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (m *Suppliers) Delete(_ context.Context, id string) error {
	delete(m.ByID, id)
	return nil
}

// PurchaseOrders órdenes de compra en memoria.
type PurchaseOrders struct {
	ByID map[string]*entity.PurchaseOrder
	seq  map[string]int
}

// NewPurchaseOrders crea el repositorio vacío.
func NewPurchaseOrders() *PurchaseOrders {
	return &PurchaseOrders{ByID: map[string]*entity.PurchaseOrder{}, seq: map[string]int{}}
}

func copyPO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *po
	cp.Lines = append([]entity.PurchaseOrderLine(nil), po.Lines...)
	return &cp
}

func (m *PurchaseOrders) Create(_ context.Context, po *entity.PurchaseOrder) error {
	m.ByID[po.ID] = copyPO(po)
	return nil
}

func (m *PurchaseOrders) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	po, ok := m.ByID[id]
	if !ok {
		return nil, nil
	}
	return copyPO(po), nil
}

func (m *PurchaseOrders) UpdateStatus(_ context.Context, po *entity.PurchaseOrder, from string) error {
	stored, ok := m.ByID[po.ID]
	if !ok || stored.Status != from {
		return domain.ErrConflict
	}
	stored.Status = po.Status
	stored.ReceivedAt = po.ReceivedAt
	stored.UpdatedAt = po.UpdatedAt
	return nil
}

func (m *PurchaseOrders) ListByCompany(_ context.Context, companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range m.ByID {
		if po.CompanyID == companyID && (status == "" || po.Status == status) {
			out = append(out, copyPO(po))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

func (m *PurchaseOrders) CountByStatus(ctx context.Context, companyID, status string) (int, error) {
	l, _ := m.ListByCompany(ctx, companyID, status, 0, 0)
	return len(l), nil
}

func (m *PurchaseOrders) NextNumber(_ context.Context, companyID string) (string, error) {
	m.seq[companyID]++
	return fmt.Sprintf("OC-%06d", m.seq[companyID]), nil
}
