package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/analytics"
	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/purchasing"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	CompanyUC        *usecase.CompanyUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	BOMUC            *production.BOMUseCase
	ProductionUC     *production.OrderUseCase
	SupplierUC       *usecase.SupplierUseCase
	PurchaseUC       *purchasing.PurchaseOrderUseCase
	PurchasePDF      *purchasing.PDFUseCase
	AlertUC          *usecase.AlertUseCase
	SettingsUC       *usecase.SettingsUseCase
	DashboardUC      *analytics.DashboardUseCase
	AnalyticsUC      *usecase.AnalyticsUseCase
	ERPUC            *usecase.ERPUseCase
	Migrators        MigratorFactory
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	admin := RequireRole(entity.RoleAdmin)
	produccion := RequireRole(entity.RoleAdmin, entity.RoleProduccion)
	compras := RequireRole(entity.RoleAdmin, entity.RoleCompras)
	stock := RequireRole(entity.RoleAdmin, entity.RoleProduccion, entity.RoleCompras)

	protected.Get("/me", authHandler.Me)
	protected.Get("/companies/:id", companyHandler.GetByID)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", compras, productHandler.Create)
	products.Put("/:id", compras, productHandler.Update)
	products.Patch("/:id/quantity", produccion, productHandler.UpdateQuantity)
	products.Delete("/:id", admin, productHandler.Delete)

	// Inventory movements
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", stock, inventoryHandler.RegisterMovement)
	invGroup.Get("/replenishment-list", compras, inventoryHandler.GetReplenishmentList)

	// Finished products (BOM) y órdenes de producción
	productionHandler := NewProductionHandler(deps.BOMUC, deps.ProductionUC)
	fps := protected.Group("/finished-products")
	fps.Get("/", productionHandler.ListFinishedProducts)
	fps.Get("/:id", productionHandler.GetFinishedProduct)
	fps.Get("/:id/feasibility", productionHandler.Feasibility)
	fps.Post("/", produccion, productionHandler.CreateFinishedProduct)
	fps.Put("/:id", produccion, productionHandler.UpdateFinishedProduct)
	fps.Delete("/:id", produccion, productionHandler.DeleteFinishedProduct)

	orders := protected.Group("/production-orders")
	orders.Get("/", productionHandler.ListOrders)
	orders.Get("/:id", productionHandler.GetOrder)
	orders.Post("/", produccion, productionHandler.CreateOrder)
	orders.Post("/:id/complete", produccion, productionHandler.CompleteOrder)
	orders.Post("/:id/cancel", produccion, productionHandler.CancelOrder)

	// Suppliers y órdenes de compra
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Post("/", compras, supplierHandler.Create)
	suppliers.Put("/:id", compras, supplierHandler.Update)
	suppliers.Delete("/:id", compras, supplierHandler.Delete)

	poHandler := NewPurchaseOrderHandler(deps.PurchaseUC, deps.PurchasePDF)
	pos := protected.Group("/purchase-orders", compras)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.Get)
	pos.Get("/:id/pdf", poHandler.DownloadPDF)
	pos.Post("/", poHandler.Create)
	pos.Post("/:id/receive", poHandler.Receive)
	pos.Post("/:id/cancel", poHandler.Cancel)

	// Alerts y settings
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts := protected.Group("/alerts")
	alerts.Get("/", alertHandler.List)
	alerts.Post("/scan", admin, alertHandler.Scan)
	alerts.Post("/:id/read", alertHandler.MarkRead)

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", admin, settingsHandler.Update)

	// Dashboard y analítica
	protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
	protected.Get("/analytics/consumption", compras, NewAnalyticsHandler(deps.AnalyticsUC).GetConsumption)

	// ERP externo
	protected.Get("/erp/products", compras, NewERPHandler(deps.ERPUC).ListProducts)

	// Migración de la instantánea local (solo admin)
	if deps.Migrators != nil {
		migrationHandler := NewMigrationHandler(deps.Migrators)
		mig := protected.Group("/migration", admin)
		mig.Get("/status", migrationHandler.Status)
		mig.Post("/run", migrationHandler.Run)
		mig.Post("/restore", migrationHandler.Restore)
		mig.Post("/import", migrationHandler.Import)
	}
}
