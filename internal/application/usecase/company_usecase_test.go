package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/testutil/memrepo"
)

func TestCompanyUseCase_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	uc := NewCompanyUseCase(memrepo.NewCompanies())

	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Taller Norte", TaxID: "900.123.456"})
	require.NoError(t, err)
	assert.Equal(t, "active", c.Status)
	assert.Equal(t, "900123456-8", c.TaxID)

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taller Norte", got.Name)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", TaxID: "900123456-8"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUseCase_Create_InvalidTaxID(t *testing.T) {
	uc := NewCompanyUseCase(memrepo.NewCompanies())

	for _, taxID := range []string{"", "900123456-7", "12"} {
		_, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "Taller", TaxID: taxID})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, taxID)
	}
}
