package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// SettingsRepository preferencias por empresa. Get devuelve (nil, nil) si no hay registro.
type SettingsRepository interface {
	Get(ctx context.Context, companyID string) (*entity.Settings, error)
	Save(ctx context.Context, s *entity.Settings) error
}
