// Package memrepo implementa los puertos de repositorio en memoria para pruebas de casos de uso.
// Las lecturas devuelven copias; las escrituras reemplazan el registro guardado.
package memrepo

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*Products)(nil)

// Products repositorio de productos en memoria.
type Products struct {
	ByID map[string]*entity.Product
	// FailWrite hace fallar UpdateQuantity para ese id.
	FailWrite string
}

// NewProducts crea el repositorio con los productos dados.
func NewProducts(ps ...*entity.Product) *Products {
	m := &Products{ByID: map[string]*entity.Product{}}
	for _, p := range ps {
		m.ByID[p.ID] = p
	}
	return m
}

func (m *Products) sorted(filter func(*entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range m.ByID {
		if filter(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

func (m *Products) Create(_ context.Context, p *entity.Product) error {
	for _, other := range m.ByID {
		if other.CompanyID == p.CompanyID && other.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	m.ByID[p.ID] = &cp
	return nil
}

func (m *Products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.ByID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *Products) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	list := m.sorted(func(p *entity.Product) bool { return p.CompanyID == companyID && p.SKU == sku })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (m *Products) Update(_ context.Context, p *entity.Product) error {
	if _, ok := m.ByID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.ByID[p.ID] = &cp
	return nil
}

func (m *Products) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	p, ok := m.ByID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PurchasePrice = cost
	return nil
}

func (m *Products) UpdateQuantity(_ context.Context, id string, q int) error {
	if id == m.FailWrite {
		return errors.New("fallo de escritura")
	}
	p, ok := m.ByID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if q < 0 {
		return domain.ErrInsufficientStock
	}
	p.Quantity = q
	return nil
}

func (m *Products) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	return page(m.sorted(func(p *entity.Product) bool { return p.CompanyID == companyID }), limit, offset), nil
}

func (m *Products) ListByIDs(_ context.Context, companyID string, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := m.ByID[id]; ok && p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *Products) ListLowStock(_ context.Context, companyID string) ([]*entity.Product, error) {
	return m.sorted(func(p *entity.Product) bool { return p.CompanyID == companyID && p.IsLowStock() }), nil
}

func (m *Products) CountByCompany(_ context.Context, companyID string) (int, error) {
	return len(m.sorted(func(p *entity.Product) bool { return p.CompanyID == companyID })), nil
}

func (m *Products) Delete(_ context.Context, id string) error {
	delete(m.ByID, id)
	return nil
}

func (m *Products) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetByID(ctx, id)
}

// page aplica limit/offset; limit <= 0 devuelve todo.
func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
