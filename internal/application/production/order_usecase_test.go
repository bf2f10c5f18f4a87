package production_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	feasibility "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/testutil/memrepo"
)

const company = "c1"

type fixture struct {
	products  *memrepo.Products
	finished  *memrepo.FinishedProducts
	orders    *memrepo.Orders
	movements *memrepo.Movements
	uc        *production.OrderUseCase
}

// mesa: 2 tablas (compA) + 3 patas (compB) por unidad.
func newFixture(qtyA, qtyB int) *fixture {
	products := memrepo.NewProducts(
		&entity.Product{ID: "compA", CompanyID: company, SKU: "TAB", Name: "Tabla", Quantity: qtyA, PurchasePrice: decimal.RequireFromString("10")},
		&entity.Product{ID: "compB", CompanyID: company, SKU: "PAT", Name: "Pata", Quantity: qtyB, PurchasePrice: decimal.RequireFromString("2.5")},
		&entity.Product{ID: "otra", CompanyID: "c2", SKU: "X", Name: "Ajeno", Quantity: 100},
	)
	finished := memrepo.NewFinishedProducts(
		&entity.FinishedProduct{ID: "mesa", CompanyID: company, Name: "Mesa", Code: "MESA-01", Lines: []entity.BOMLine{
			{FinishedProductID: "mesa", ComponentID: "compA", QuantityPerUnit: 2, Process: "corte"},
			{FinishedProductID: "mesa", ComponentID: "compB", QuantityPerUnit: 3, Process: "ensamble"},
		}},
		&entity.FinishedProduct{ID: "vacio", CompanyID: company, Name: "Sin receta", Code: "VAC"},
	)
	orders := memrepo.NewOrders()
	movements := &memrepo.Movements{}
	tx := &memrepo.Tx{Products: products, Movements: movements, Orders: orders}
	return &fixture{
		products:  products,
		finished:  finished,
		orders:    orders,
		movements: movements,
		uc:        production.NewOrderUseCase(tx, finished, products, orders, zerolog.Nop()),
	}
}

func TestFeasibility(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()

	res, err := f.uc.Feasibility(ctx, company, "mesa", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.MaxProducible)
	assert.True(t, res.Feasible)
	assert.Empty(t, res.Shortages)

	res, err = f.uc.Feasibility(ctx, company, "mesa", 5)
	require.NoError(t, err)
	assert.False(t, res.Feasible)
	assert.Equal(t, []feasibility.Shortage{{ComponentID: "compB", Needed: 15, Available: 9}}, res.Shortages)

	res, err = f.uc.Feasibility(ctx, company, "vacio", 1)
	require.NoError(t, err)
	assert.Zero(t, res.MaxProducible)
	assert.False(t, res.Feasible)

	_, err = f.uc.Feasibility(ctx, "c2", "mesa", 1)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)

	_, err = f.uc.Feasibility(ctx, company, "mesa", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_BlockedByShortage(t *testing.T) {
	f := newFixture(10, 9)

	_, err := f.uc.CreateOrder(context.Background(), company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 5})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var se *feasibility.ShortageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "compB", se.Shortages[0].ComponentID)
	assert.Empty(t, f.orders.ByID)
}

func TestCreateOrder_QuantityOutOfRange(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: math.MaxInt/2 + 1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.orders.ByID)

	_, err = f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: feasibility.MaxQuantity + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Feasibility(ctx, company, "mesa", feasibility.MaxQuantity+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.uc.Feasibility(ctx, company, "mesa", feasibility.MaxQuantity)
	require.NoError(t, err)
	assert.False(t, res.Feasible)
	assert.Len(t, res.Shortages, 2)
}

func TestCreateOrder_WithoutRecipe(t *testing.T) {
	f := newFixture(10, 9)
	_, err := f.uc.CreateOrder(context.Background(), company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "vacio", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestCompleteOrder_ConsumesComponents(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()

	created, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusPending, created.Status)

	done, err := f.uc.CompleteOrder(ctx, company, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	assert.Equal(t, 4, f.products.ByID["compA"].Quantity)
	assert.Equal(t, 0, f.products.ByID["compB"].Quantity)

	movs, _ := f.movements.ListByTransaction(ctx, created.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypePRODUCTION, movs[0].Type)
	assert.Equal(t, -6, movs[0].Quantity)
	assert.True(t, movs[0].TotalCost.Equal(decimal.NewFromInt(-60)))
	assert.Equal(t, -9, movs[1].Quantity)

	_, err = f.uc.CompleteOrder(ctx, company, "u1", created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompleteOrder_AllOrNothing(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()

	created, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 3})
	require.NoError(t, err)

	// otra salida deja compB corto antes de cerrar la orden
	f.products.ByID["compB"].Quantity = 8

	_, err = f.uc.CompleteOrder(ctx, company, "u1", created.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.products.ByID["compA"].Quantity)
	assert.Equal(t, 8, f.products.ByID["compB"].Quantity)
	assert.Empty(t, f.movements.List)
	assert.Equal(t, entity.ProductionStatusPending, f.orders.ByID[created.ID].Status)
}

func TestCompleteOrder_WriteFailureRollsBack(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()

	created, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 1})
	require.NoError(t, err)
	f.products.FailWrite = "compB"

	_, err = f.uc.CompleteOrder(ctx, company, "u1", created.ID)
	require.Error(t, err)
	assert.Equal(t, 10, f.products.ByID["compA"].Quantity)
	assert.Equal(t, 9, f.products.ByID["compB"].Quantity)
}

// interleavedTx ejecuta before justo antes de abrir la transacción, cuando el caso de uso
// ya validó el estado de la orden fuera de ella.
type interleavedTx struct {
	*memrepo.Tx
	before func()
}

func (t *interleavedTx) RunProduction(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	if t.before != nil {
		before := t.before
		t.before = nil
		before()
	}
	return t.Tx.RunProduction(ctx, fn)
}

func TestCompleteOrder_ConcurrentCompletionConsumesOnce(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()
	created, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 1})
	require.NoError(t, err)

	tx := &interleavedTx{Tx: &memrepo.Tx{Products: f.products, Movements: f.movements, Orders: f.orders}}
	racing := production.NewOrderUseCase(tx, f.finished, f.products, f.orders, zerolog.Nop())
	tx.before = func() {
		_, err := f.uc.CompleteOrder(ctx, company, "u2", created.ID)
		require.NoError(t, err)
	}

	_, err = racing.CompleteOrder(ctx, company, "u1", created.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, 8, f.products.ByID["compA"].Quantity)
	assert.Equal(t, 6, f.products.ByID["compB"].Quantity)
	assert.Len(t, f.movements.List, 2)
	assert.Equal(t, entity.ProductionStatusCompleted, f.orders.ByID[created.ID].Status)
}

func TestCompleteOrder_LosesToConcurrentCancel(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()
	created, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 1})
	require.NoError(t, err)

	tx := &interleavedTx{Tx: &memrepo.Tx{Products: f.products, Movements: f.movements, Orders: f.orders}}
	completer := production.NewOrderUseCase(tx, f.finished, f.products, f.orders, zerolog.Nop())
	tx.before = func() {
		_, err := f.uc.CancelOrder(ctx, company, created.ID)
		require.NoError(t, err)
	}

	_, err = completer.CompleteOrder(ctx, company, "u1", created.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 10, f.products.ByID["compA"].Quantity)
	assert.Empty(t, f.movements.List)
	assert.Equal(t, entity.ProductionStatusCancelled, f.orders.ByID[created.ID].Status)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(10, 9)
	ctx := context.Background()

	created, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 2})
	require.NoError(t, err)

	cancelled, err := f.uc.CancelOrder(ctx, company, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCancelled, cancelled.Status)
	assert.Equal(t, 10, f.products.ByID["compA"].Quantity)

	_, err = f.uc.CompleteOrder(ctx, company, "u1", created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.CancelOrder(ctx, "c2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	f := newFixture(100, 100)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.uc.CreateOrder(ctx, company, "u1", dto.CreateProductionOrderRequest{FinishedProductID: "mesa", Quantity: 1})
		require.NoError(t, err)
	}

	list, err := f.uc.ListOrders(ctx, company, entity.ProductionStatusPending, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, 20, list.Page.Limit)

	_, err = f.uc.ListOrders(ctx, company, "en-curso", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
