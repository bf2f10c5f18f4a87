package production_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

func TestBOMUseCase_CreateAndGet(t *testing.T) {
	f := newFixture(10, 9)
	uc := production.NewBOMUseCase(f.finished, f.products)
	ctx := context.Background()

	out, err := uc.Create(ctx, company, dto.CreateFinishedProductRequest{
		Name: "Banco",
		Code: "BAN-01",
		Lines: []dto.BOMLineRequest{
			{ComponentID: "compA", QuantityPerUnit: 1, Process: "corte"},
			{ComponentID: "compB", QuantityPerUnit: 4, Process: "ensamble"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.MaxProducible)
	require.Len(t, out.Lines, 2)
	assert.Equal(t, "Tabla", out.Lines[0].ComponentName)
	assert.Equal(t, 9, out.Lines[1].Available)

	got, err := uc.Get(ctx, company, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "BAN-01", got.Code)
	assert.Equal(t, 2, got.MaxProducible)
}

func TestBOMUseCase_RejectsInvalidLines(t *testing.T) {
	f := newFixture(10, 9)
	uc := production.NewBOMUseCase(f.finished, f.products)
	ctx := context.Background()

	_, err := uc.Create(ctx, company, dto.CreateFinishedProductRequest{Name: "X", Code: "X1",
		Lines: []dto.BOMLineRequest{{ComponentID: "noexiste", QuantityPerUnit: 1}}})
	assert.ErrorIs(t, err, domain.ErrUnknownComponent)

	_, err = uc.Create(ctx, company, dto.CreateFinishedProductRequest{Name: "X", Code: "X2",
		Lines: []dto.BOMLineRequest{{ComponentID: "otra", QuantityPerUnit: 1}}})
	assert.ErrorIs(t, err, domain.ErrUnknownComponent, "componente de otra empresa")

	_, err = uc.Create(ctx, company, dto.CreateFinishedProductRequest{Name: "X", Code: "X3",
		Lines: []dto.BOMLineRequest{{ComponentID: "compA", QuantityPerUnit: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, company, dto.CreateFinishedProductRequest{Name: "X", Code: "X4",
		Lines: []dto.BOMLineRequest{{ComponentID: "compA", QuantityPerUnit: 1}, {ComponentID: "compA", QuantityPerUnit: 2}}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, company, dto.CreateFinishedProductRequest{Name: "", Code: "X5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBOMUseCase_UpdateReplacesLines(t *testing.T) {
	f := newFixture(10, 9)
	uc := production.NewBOMUseCase(f.finished, f.products)
	ctx := context.Background()

	name := "Mesa grande"
	out, err := uc.Update(ctx, company, "mesa", dto.UpdateFinishedProductRequest{
		Name:  &name,
		Lines: []dto.BOMLineRequest{{ComponentID: "compA", QuantityPerUnit: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mesa grande", out.Name)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 2, out.MaxProducible)

	stored, _ := f.finished.GetByID(ctx, "mesa")
	assert.Len(t, stored.Lines, 1)

	// sin Lines la receta no cambia
	desc := "roble"
	out, err = uc.Update(ctx, company, "mesa", dto.UpdateFinishedProductRequest{Description: &desc})
	require.NoError(t, err)
	assert.Len(t, out.Lines, 1)
}

func TestBOMUseCase_Delete(t *testing.T) {
	f := newFixture(10, 9)
	uc := production.NewBOMUseCase(f.finished, f.products)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, "c2", "mesa"), domain.ErrUnknownProduct)
	require.NoError(t, uc.Delete(ctx, company, "mesa"))
	_, err := uc.Get(ctx, company, "mesa")
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}
