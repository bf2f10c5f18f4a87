package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// overdueScan tope de órdenes pendientes revisadas por escaneo.
const overdueScan = 500

// AlertUseCase genera y administra alertas de stock bajo y órdenes de producción vencidas.
type AlertUseCase struct {
	alertRepo    repository.AlertRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.ProductionOrderRepository
	settingsRepo repository.SettingsRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	alertRepo repository.AlertRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.ProductionOrderRepository,
	settingsRepo repository.SettingsRepository,
	log zerolog.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		alertRepo:    alertRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		log:          log,
		now:          time.Now,
	}
}

// Scan crea una alerta abierta por producto en o bajo su mínimo y por orden pendiente vencida.
// No duplica: si ya existe una alerta sin leer del mismo tipo y producto/orden se omite.
func (uc *AlertUseCase) Scan(ctx context.Context, companyID string) (*dto.AlertScanResponse, error) {
	settings, err := uc.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultSettings(companyID)
	}

	var created []*entity.Alert
	if settings.LowStockAlerts {
		low, err := uc.productRepo.ListLowStock(ctx, companyID)
		if err != nil {
			return nil, err
		}
		for _, p := range low {
			msg := fmt.Sprintf("Stock bajo: %s (%s) tiene %d %s, mínimo %d", p.Name, p.SKU, p.Quantity, p.Unit, p.MinStock)
			a, err := uc.createIfAbsent(ctx, companyID, entity.AlertTypeLowStock, p.ID, msg)
			if err != nil {
				return nil, err
			}
			if a != nil {
				created = append(created, a)
			}
		}
	}
	if settings.OverdueAlerts {
		orders, err := uc.orderRepo.ListByCompany(ctx, companyID, entity.ProductionStatusPending, overdueScan, 0)
		if err != nil {
			return nil, err
		}
		now := uc.now()
		for _, o := range orders {
			if o.DueDate == nil || !o.DueDate.Before(now) {
				continue
			}
			msg := fmt.Sprintf("Orden de producción vencida desde %s (%d unidades)", o.DueDate.Format("2006-01-02"), o.Quantity)
			a, err := uc.createIfAbsent(ctx, companyID, entity.AlertTypeOverdue, o.ID, msg)
			if err != nil {
				return nil, err
			}
			if a != nil {
				created = append(created, a)
			}
		}
	}

	out := &dto.AlertScanResponse{Created: len(created), Alerts: make([]dto.AlertResponse, 0, len(created))}
	for _, a := range created {
		out.Alerts = append(out.Alerts, toAlertResponse(a))
	}
	if len(created) > 0 {
		uc.log.Info().Str("company_id", companyID).Int("created", len(created)).Msg("alertas generadas")
	}
	return out, nil
}

func (uc *AlertUseCase) createIfAbsent(ctx context.Context, companyID, alertType, refID, msg string) (*entity.Alert, error) {
	open, err := uc.alertRepo.HasOpen(ctx, companyID, alertType, refID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, nil
	}
	a := &entity.Alert{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      alertType,
		ProductID: refID,
		Message:   msg,
		CreatedAt: uc.now(),
	}
	if err := uc.alertRepo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// otro escaneo concurrente ya la creó
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// List lista alertas, más recientes primero.
func (uc *AlertUseCase) List(ctx context.Context, companyID string, unreadOnly bool, page dto.PageRequest) ([]dto.AlertResponse, error) {
	page.DefaultPage()
	list, err := uc.alertRepo.ListByCompany(ctx, companyID, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAlertResponse(a))
	}
	return out, nil
}

// MarkRead marca una alerta como leída. ErrNotFound si no es de la empresa.
func (uc *AlertUseCase) MarkRead(ctx context.Context, companyID, id string) error {
	return uc.alertRepo.MarkRead(ctx, companyID, id)
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:        a.ID,
		Type:      a.Type,
		ProductID: a.ProductID,
		Message:   a.Message,
		Read:      a.Read,
		CreatedAt: a.CreatedAt,
	}
}
