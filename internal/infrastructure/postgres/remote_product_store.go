package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/application/migration"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

var _ migration.RemoteProductStore = (*RemoteProductStore)(nil)

// RemoteProductStore vista de la tabla products acotada a una empresa, destino de la migración.
type RemoteProductStore struct {
	q         Querier
	companyID string
	products  *ProductRepo
}

// NewRemoteProductStore construye el adaptador para la empresa dada.
func NewRemoteProductStore(q Querier, companyID string) *RemoteProductStore {
	return &RemoteProductStore{q: q, companyID: companyID, products: NewProductRepository(q)}
}

// Count productos de la empresa; fallos de conexión se reportan como ErrRemoteUnavailable.
func (s *RemoteProductStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE company_id = $1`, s.companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return n, nil
}

// Insert crea el producto en la empresa del store. El índice único (company_id, legacy_id)
// convierte una segunda migración concurrente en ErrDuplicate.
func (s *RemoteProductStore) Insert(ctx context.Context, p *entity.Product) error {
	p.CompanyID = s.companyID
	return s.products.Create(ctx, p)
}
