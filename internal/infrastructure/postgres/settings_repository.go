package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo preferencias por empresa guardadas como JSONB en company_settings.data.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get (nil, nil) si la empresa aún no guardó preferencias.
func (r *SettingsRepo) Get(ctx context.Context, companyID string) (*entity.Settings, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT data FROM company_settings WHERE company_id = $1`, companyID).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	// campos ausentes en el JSON guardado conservan el valor por defecto
	s := entity.DefaultSettings(companyID)
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.CompanyID = companyID
	return s, nil
}

// Save UPSERT del documento completo.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO company_settings (company_id, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (company_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		s.CompanyID, raw, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
