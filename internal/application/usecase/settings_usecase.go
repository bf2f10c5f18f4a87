package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// SettingsUseCase preferencias por empresa. Sin registro guardado se devuelven los valores por defecto.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve las preferencias de la empresa.
func (uc *SettingsUseCase) Get(ctx context.Context, companyID string) (*entity.Settings, error) {
	s, err := uc.repo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = entity.DefaultSettings(companyID)
	}
	return s, nil
}

// Update aplica solo los campos presentes.
func (uc *SettingsUseCase) Update(ctx context.Context, companyID string, in dto.UpdateSettingsRequest) (*entity.Settings, error) {
	s, err := uc.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		s.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if len(c) != 3 {
			return nil, domain.ErrInvalidInput
		}
		s.Currency = c
	}
	if in.DefaultMinStock != nil {
		if *in.DefaultMinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		s.DefaultMinStock = *in.DefaultMinStock
	}
	if in.LowStockAlerts != nil {
		s.LowStockAlerts = *in.LowStockAlerts
	}
	if in.OverdueAlerts != nil {
		s.OverdueAlerts = *in.OverdueAlerts
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
