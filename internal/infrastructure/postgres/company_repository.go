package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, tax_id, address, phone, email, status, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. ErrDuplicate si el NIT ya existe.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.TaxID, c.Address, c.Phone, c.Email, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByTaxID obtiene una empresa por NIT.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE tax_id = $1`, taxID)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Address, &c.Phone, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
