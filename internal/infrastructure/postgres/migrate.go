package postgres

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate aplica en orden las migraciones embebidas que falten; cada archivo corre en su propia tx
// y se registra en schema_migrations (000 crea la tabla y se registra a sí mismo).
func Migrate(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) (int, error) {
	files, err := migrationNames()
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, name := range files {
		version := strings.SplitN(name, "_", 2)[0]

		var exists bool
		err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil && version != "000" {
			return applied, fmt.Errorf("schema_migrations no existe y la migración no es 000: %s: %w", name, err)
		}
		if exists {
			log.Debug().Str("migration", name).Msg("migración ya aplicada")
			continue
		}

		sqlBytes, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return applied, fmt.Errorf("leer %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("aplicando migración")

		tx, err := pool.Begin(ctx)
		if err != nil {
			return applied, fmt.Errorf("begin %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback(ctx)
			return applied, fmt.Errorf("ejecutar %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT DO NOTHING`, version); err != nil {
			_ = tx.Rollback(ctx)
			return applied, fmt.Errorf("registrar %s: %w", name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return applied, fmt.Errorf("commit %s: %w", name, err)
		}
		applied++
	}
	log.Info().Int("applied", applied).Int("total", len(files)).Msg("esquema al día")
	return applied, nil
}

// migrationNames archivos .sql embebidos en orden de versión.
func migrationNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
