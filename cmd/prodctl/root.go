package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Produccion-api/internal/application/migration"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/localstore"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// env recursos compartidos por los subcomandos; se abren bajo demanda.
type env struct {
	localPath string
	companyID string
	verbose   bool

	cfg   *config.Config
	log   *logger.Logger
	local *localstore.Store
	pool  *pgxpool.Pool
}

// newRootCmd devuelve el comando raíz y la función que libera las conexiones abiertas.
func newRootCmd() (*cobra.Command, func()) {
	e := &env{}
	root := &cobra.Command{
		Use:   "prodctl",
		Short: "Operación de Produccion API",
		Long: `Herramienta de operación de Produccion API.

Comandos:
  migrate  - Migrar la instantánea local de productos a PostgreSQL
  local    - Inspeccionar el almacén local SQLite
  schema   - Aplicar las migraciones de esquema embebidas

Ejemplos:
  prodctl migrate import productos.json --company <id>  # Cargar un export de la app anterior
  prodctl migrate status --company <id>                 # Ver registros locales/remotos
  prodctl migrate run --company <id>                    # Migrar una sola vez
  prodctl migrate restore --company <id>                # Volver al snapshot respaldado`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&e.localPath, "local-db", "", "archivo SQLite local (default LOCAL_STORE_PATH)")
	root.PersistentFlags().StringVar(&e.companyID, "company", "", "empresa destino (default MIGRATION_COMPANY_ID)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "logs detallados")

	root.AddCommand(newMigrateCmd(e), newLocalCmd(e), newSchemaCmd(e))
	return root, e.close
}

func (e *env) config() (*config.Config, error) {
	if e.cfg != nil {
		return e.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	e.cfg = cfg
	return cfg, nil
}

func (e *env) logger() *logger.Logger {
	if e.log == nil {
		if e.verbose {
			e.log = logger.New(logger.Config{Env: "development", Level: "debug"})
		} else {
			e.log = logger.Nop()
		}
	}
	return e.log
}

func (e *env) openLocal() (*localstore.Store, error) {
	if e.local != nil {
		return e.local, nil
	}
	path := e.localPath
	if path == "" {
		cfg, err := e.config()
		if err != nil {
			return nil, err
		}
		path = cfg.LocalStore.Path
	}
	s, err := localstore.Open(path)
	if err != nil {
		return nil, err
	}
	e.local = s
	return s, nil
}

func (e *env) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if e.pool != nil {
		return e.pool, nil
	}
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	e.pool = pool
	return pool, nil
}

func (e *env) keys() (snapshot, backup string) {
	if e.cfg != nil {
		return e.cfg.Migration.SnapshotKey, e.cfg.Migration.BackupKey
	}
	return migration.DefaultSnapshotKey, migration.DefaultBackupKey
}

// company empresa de --company o MIGRATION_COMPANY_ID; el snapshot local es por empresa.
func (e *env) company() (string, error) {
	if e.companyID != "" {
		return e.companyID, nil
	}
	cfg, err := e.config()
	if err != nil {
		return "", err
	}
	if cfg.Migration.CompanyID == "" {
		return "", fmt.Errorf("falta --company o MIGRATION_COMPANY_ID")
	}
	return cfg.Migration.CompanyID, nil
}

// migrator construye el migrador. Con remote=false no abre PostgreSQL (import, restore).
func (e *env) migrator(ctx context.Context, remote bool) (*migration.Migrator, error) {
	local, err := e.openLocal()
	if err != nil {
		return nil, err
	}
	companyID, err := e.company()
	if err != nil {
		return nil, err
	}
	var store migration.RemoteProductStore
	if remote {
		pool, err := e.openPool(ctx)
		if err != nil {
			return nil, err
		}
		store = postgres.NewRemoteProductStore(pool, companyID)
	}
	snapshot, backup := e.keys()
	return migration.NewMigrator(local, store, migration.Options{
		CompanyID:   companyID,
		SnapshotKey: snapshot,
		BackupKey:   backup,
	}, e.logger().Zerolog()), nil
}

func (e *env) close() {
	if e.local != nil {
		e.local.Close()
		e.local = nil
	}
	if e.pool != nil {
		e.pool.Close()
		e.pool = nil
	}
}
