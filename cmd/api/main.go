package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Produccion-api/docs"
	appanalytics "github.com/jhoicas/Produccion-api/internal/application/analytics"
	"github.com/jhoicas/Produccion-api/internal/application/auth"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/application/migration"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/purchasing"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/erp"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/Produccion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		n, err := postgres.Migrate(ctx, pool, log.Component("schema"))
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones de esquema")
		}
		log.Info().Int("applied", n).Msg("esquema al día")
	}

	local, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LocalStore.Path).Msg("almacén local")
	}
	defer local.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	fpRepo := postgres.NewFinishedProductRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	newMigrator := func(companyID string) *migration.Migrator {
		return migration.NewMigrator(local, postgres.NewRemoteProductStore(pool, companyID), migration.Options{
			CompanyID:   companyID,
			SnapshotKey: cfg.Migration.SnapshotKey,
			BackupKey:   cfg.Migration.BackupKey,
		}, log.Zerolog())
	}
	if cfg.Migration.Auto {
		runStartupMigration(ctx, log, newMigrator(cfg.Migration.CompanyID))
	}

	// ERP opcional: sin ERP_BASE_URL el caso de uso responde REMOTE_UNAVAILABLE
	var erpClient usecase.ERPClient
	if cfg.ERP.Enabled() {
		erpClient = erp.NewClient(cfg.ERP)
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Produccion API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(userRepo),
		CompanyUC:        usecase.NewCompanyUseCase(companyRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo, supplierRepo, settingsRepo),
		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, productRepo, movementRepo),
		Replenishment:    inventory.NewReplenishmentUseCase(productRepo, orderRepo, fpRepo),
		BOMUC:            production.NewBOMUseCase(fpRepo, productRepo),
		ProductionUC:     production.NewOrderUseCase(txRunner, fpRepo, productRepo, orderRepo, log.Component("production")),
		SupplierUC:       usecase.NewSupplierUseCase(supplierRepo),
		PurchaseUC:       purchasing.NewPurchaseOrderUseCase(txRunner, poRepo, supplierRepo, productRepo, log.Component("purchasing")),
		PurchasePDF:      purchasing.NewPDFUseCase(poRepo, companyRepo, supplierRepo, productRepo, infrapdf.NewMarotoPDFGenerator()),
		AlertUC:          usecase.NewAlertUseCase(alertRepo, productRepo, orderRepo, settingsRepo, log.Component("alerts")),
		SettingsUC:       usecase.NewSettingsUseCase(settingsRepo),
		DashboardUC:      appanalytics.NewDashboardUseCase(analyticsRepo, fpRepo, productRepo),
		AnalyticsUC:      usecase.NewAnalyticsUseCase(analyticsRepo),
		ERPUC:            usecase.NewERPUseCase(erpClient),
		Migrators:        func(companyID string) httpRouter.StockMigrator { return newMigrator(companyID) },
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runStartupMigration migra la instantánea local una sola vez. Un fallo no impide arrancar la API.
func runStartupMigration(ctx context.Context, log *logger.Logger, m *migration.Migrator) {
	needs, err := m.NeedsMigration(ctx)
	if err != nil {
		log.Error().Err(err).Msg("verificar migración")
		return
	}
	if !needs {
		log.Info().Msg("migración no requerida")
		return
	}
	rec, err := m.Migrate(ctx)
	switch {
	case errors.Is(err, domain.ErrGuardViolation):
		log.Warn().Strs("errors", rec.Errors).Msg("migración omitida")
	case err != nil:
		log.Error().Err(err).Msg("migración de la instantánea local")
	case !rec.Success:
		log.Warn().Int("migrated", rec.MigratedCount).Strs("errors", rec.Errors).Msg("migración con errores")
	default:
		log.Info().Int("migrated", rec.MigratedCount).Msg("instantánea local migrada")
	}
}
