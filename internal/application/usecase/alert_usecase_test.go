package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/testutil/memrepo"
)

func newAlertUC(now time.Time) (*AlertUseCase, *memrepo.Alerts, *memrepo.Orders, *memrepo.Settings) {
	products := memrepo.NewProducts(
		&entity.Product{ID: "p1", CompanyID: companyA, SKU: "A", Name: "Bisagra", Unit: "un", Quantity: 2, MinStock: 10},
		&entity.Product{ID: "p2", CompanyID: companyA, SKU: "B", Name: "Tabla", Unit: "un", Quantity: 80, MinStock: 10},
	)
	alerts := &memrepo.Alerts{}
	orders := memrepo.NewOrders()
	settings := memrepo.NewSettings()
	uc := NewAlertUseCase(alerts, products, orders, settings, zerolog.Nop())
	uc.now = func() time.Time { return now }
	return uc, alerts, orders, settings
}

func TestAlertUseCase_Scan_LowStockAndOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	uc, alerts, orders, _ := newAlertUC(now)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	require.NoError(t, orders.Create(context.Background(), &entity.ProductionOrder{ID: "o1", CompanyID: companyA, Status: entity.ProductionStatusPending, Quantity: 3, DueDate: &past}))
	require.NoError(t, orders.Create(context.Background(), &entity.ProductionOrder{ID: "o2", CompanyID: companyA, Status: entity.ProductionStatusPending, Quantity: 3, DueDate: &future}))

	out, err := uc.Scan(context.Background(), companyA)
	require.NoError(t, err)
	require.Equal(t, 2, out.Created)
	assert.Equal(t, entity.AlertTypeLowStock, out.Alerts[0].Type)
	assert.Equal(t, "p1", out.Alerts[0].ProductID)
	assert.Equal(t, entity.AlertTypeOverdue, out.Alerts[1].Type)
	assert.Equal(t, "o1", out.Alerts[1].ProductID)

	again, err := uc.Scan(context.Background(), companyA)
	require.NoError(t, err)
	assert.Zero(t, again.Created)
	assert.Len(t, alerts.List, 2)
}

func TestAlertUseCase_Scan_RespectsToggles(t *testing.T) {
	uc, _, _, settings := newAlertUC(time.Now())
	s := entity.DefaultSettings(companyA)
	s.LowStockAlerts = false
	require.NoError(t, settings.Save(context.Background(), s))

	out, err := uc.Scan(context.Background(), companyA)
	require.NoError(t, err)
	assert.Zero(t, out.Created)
	assert.Empty(t, out.Alerts)
}

func TestAlertUseCase_MarkReadReopensScan(t *testing.T) {
	uc, _, _, _ := newAlertUC(time.Now())
	ctx := context.Background()

	out, err := uc.Scan(ctx, companyA)
	require.NoError(t, err)
	require.Equal(t, 1, out.Created)
	require.NoError(t, uc.MarkRead(ctx, companyA, out.Alerts[0].ID))

	unread, err := uc.List(ctx, companyA, true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, unread)

	again, err := uc.Scan(ctx, companyA)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Created)

	assert.ErrorIs(t, uc.MarkRead(ctx, "otra", out.Alerts[0].ID), domain.ErrNotFound)
}
