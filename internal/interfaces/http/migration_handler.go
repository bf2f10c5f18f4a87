package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/migration"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

// StockMigrator operaciones del migrador de la instantánea local.
type StockMigrator interface {
	Status(ctx context.Context) (migration.Status, error)
	Migrate(ctx context.Context) (migration.MigrationRecord, error)
	RestoreFromBackup(ctx context.Context) (bool, error)
	Import(ctx context.Context, blob []byte) (int, error)
}

// MigratorFactory construye el migrador con destino en la empresa indicada.
type MigratorFactory func(companyID string) StockMigrator

// MigrationHandler expone el migrador a administradores.
type MigrationHandler struct {
	newMigrator MigratorFactory
}

// NewMigrationHandler construye el handler.
func NewMigrationHandler(f MigratorFactory) *MigrationHandler {
	return &MigrationHandler{newMigrator: f}
}

// Status godoc
// @Summary      Estado de la migración
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MigrationStatusResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/migration/status [get]
func (h *MigrationHandler) Status(c *fiber.Ctx) error {
	st, err := h.newMigrator(GetCompanyID(c)).Status(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MigrationStatusResponse{
		NeedsMigration: st.NeedsMigration,
		LocalRecords:   st.LocalRecords,
		RemoteRecords:  st.RemoteRecords,
		HasBackup:      st.HasBackup,
	})
}

// Run godoc
// @Summary      Ejecutar migración
// @Description  Inserta la instantánea local en la empresa del token. 409 si ya hay productos.
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MigrationResultResponse
// @Failure      409  {object}  dto.MigrationResultResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/migration/run [post]
func (h *MigrationHandler) Run(c *fiber.Ctx) error {
	rec, err := h.newMigrator(GetCompanyID(c)).Migrate(c.Context())
	res := dto.MigrationResultResponse{Success: rec.Success, MigratedCount: rec.MigratedCount, Errors: rec.Errors}
	if errors.Is(err, domain.ErrGuardViolation) {
		return c.Status(fiber.StatusConflict).JSON(res)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Restore godoc
// @Summary      Restaurar instantánea desde el respaldo
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/migration/restore [post]
func (h *MigrationHandler) Restore(c *fiber.Ctx) error {
	ok, err := h.newMigrator(GetCompanyID(c)).RestoreFromBackup(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_BACKUP", Message: "no hay respaldo"})
	}
	return c.JSON(fiber.Map{"restored": true})
}

// Import godoc
// @Summary      Importar instantánea heredada
// @Description  Cuerpo: arreglo JSON de productos exportados de la aplicación anterior.
// @Tags         migration
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/migration/import [post]
func (h *MigrationHandler) Import(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)
	n, err := h.newMigrator(GetCompanyID(c)).Import(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"records": n})
}
