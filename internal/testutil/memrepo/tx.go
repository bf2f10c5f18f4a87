package memrepo

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Tx simula Commit/Rollback: si fn falla restaura productos, movimientos y órdenes.
// Implementa los TxRunner de inventario, producción y compras.
type Tx struct {
	Products       *Products
	Movements      *Movements
	Orders         *Orders
	PurchaseOrders *PurchaseOrders
}

type txState struct {
	products  map[string]entity.Product
	movements int
	orders    map[string]entity.ProductionOrder
	pos       map[string]*entity.PurchaseOrder
}

func (t *Tx) save() txState {
	st := txState{products: map[string]entity.Product{}, orders: map[string]entity.ProductionOrder{}, pos: map[string]*entity.PurchaseOrder{}}
	for id, p := range t.Products.ByID {
		st.products[id] = *p
	}
	st.movements = len(t.Movements.List)
	if t.Orders != nil {
		for id, o := range t.Orders.ByID {
			st.orders[id] = *o
		}
	}
	if t.PurchaseOrders != nil {
		for id, po := range t.PurchaseOrders.ByID {
			st.pos[id] = copyPO(po)
		}
	}
	return st
}

func (t *Tx) rollback(st txState) {
	t.Products.ByID = map[string]*entity.Product{}
	for id, p := range st.products {
		p := p
		t.Products.ByID[id] = &p
	}
	t.Movements.List = t.Movements.List[:st.movements]
	if t.Orders != nil {
		t.Orders.ByID = map[string]*entity.ProductionOrder{}
		for id, o := range st.orders {
			o := o
			t.Orders.ByID[id] = &o
		}
	}
	if t.PurchaseOrders != nil {
		t.PurchaseOrders.ByID = st.pos
	}
}

func (t *Tx) do(fn func() error) error {
	st := t.save()
	if err := fn(); err != nil {
		t.rollback(st)
		return err
	}
	return nil
}

// Run ver inventory.TxRunner.
func (t *Tx) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return t.do(func() error { return fn(t.Movements, t.Products) })
}

// RunProduction ver production.TxRunner.
func (t *Tx) RunProduction(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	return t.do(func() error { return fn(t.Movements, t.Products, t.Orders) })
}

// RunPurchase ver purchasing.TxRunner.
func (t *Tx) RunPurchase(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	return t.do(func() error { return fn(t.Movements, t.Products, t.PurchaseOrders) })
}
