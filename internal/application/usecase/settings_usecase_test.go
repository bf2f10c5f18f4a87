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

func TestSettingsUseCase_DefaultsWhenMissing(t *testing.T) {
	uc := NewSettingsUseCase(memrepo.NewSettings())

	s, err := uc.Get(context.Background(), companyA)
	require.NoError(t, err)
	assert.Equal(t, "COP", s.Currency)
	assert.Equal(t, 5, s.DefaultMinStock)
	assert.True(t, s.LowStockAlerts)
}

func TestSettingsUseCase_UpdatePartial(t *testing.T) {
	repo := memrepo.NewSettings()
	uc := NewSettingsUseCase(repo)
	cur := "usd"
	off := false

	s, err := uc.Update(context.Background(), companyA, dto.UpdateSettingsRequest{Currency: &cur, LowStockAlerts: &off})
	require.NoError(t, err)
	assert.Equal(t, "USD", s.Currency)
	assert.False(t, s.LowStockAlerts)
	assert.True(t, s.OverdueAlerts)
	assert.Equal(t, "USD", repo.ByCompany[companyA].Currency)
}

func TestSettingsUseCase_RejectsInvalid(t *testing.T) {
	uc := NewSettingsUseCase(memrepo.NewSettings())
	cur := "PESOS"
	neg := -3

	_, err := uc.Update(context.Background(), companyA, dto.UpdateSettingsRequest{Currency: &cur})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(context.Background(), companyA, dto.UpdateSettingsRequest{DefaultMinStock: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
