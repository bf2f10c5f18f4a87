package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Produccion-api/internal/domain"
	legacy "github.com/jhoicas/Produccion-api/internal/domain/migration"
)

const (
	// DefaultSnapshotKey clave del snapshot local de productos.
	DefaultSnapshotKey = "products"
	// DefaultBackupKey slot único de respaldo.
	DefaultBackupKey = "products_backup"

	remoteNonEmpty = "remote non-empty"
)

// MigrationRecord resultado de un intento de migración. Success equivale a len(Errors) == 0.
type MigrationRecord struct {
	Success       bool     `json:"success"`
	MigratedCount int      `json:"migrated_count"`
	Errors        []string `json:"errors"`
}

// Status fotografía del estado local/remoto para diagnóstico.
type Status struct {
	NeedsMigration bool
	LocalRecords   int
	RemoteRecords  int
	HasBackup      bool
}

// Options configuración del migrador. SnapshotKey y BackupKey son prefijos: NewMigrator
// los combina con CompanyID para que cada empresa tenga sus propios slots.
type Options struct {
	CompanyID   string
	SnapshotKey string
	BackupKey   string
	Now         func() time.Time
}

// SlotKey clave local de un slot para una empresa ("products:<empresa>").
func SlotKey(base, companyID string) string {
	if companyID == "" {
		return base
	}
	return base + ":" + companyID
}

// backupEnvelope contenido del slot de respaldo: el snapshot original sin modificar.
type backupEnvelope struct {
	CreatedAt time.Time       `json:"created_at"`
	Records   json.RawMessage `json:"records"`
}

// Migrator transfiere una sola vez el snapshot local al almacén remoto.
type Migrator struct {
	local  LocalSnapshotStore
	remote RemoteProductStore
	opts   Options
	log    zerolog.Logger
}

// NewMigrator construye el migrador aplicando las claves por defecto y el alcance por empresa.
func NewMigrator(local LocalSnapshotStore, remote RemoteProductStore, opts Options, log zerolog.Logger) *Migrator {
	if opts.SnapshotKey == "" {
		opts.SnapshotKey = DefaultSnapshotKey
	}
	if opts.BackupKey == "" {
		opts.BackupKey = DefaultBackupKey
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.SnapshotKey = SlotKey(opts.SnapshotKey, opts.CompanyID)
	opts.BackupKey = SlotKey(opts.BackupKey, opts.CompanyID)
	return &Migrator{
		local:  local,
		remote: remote,
		opts:   opts,
		log:    log.With().Str("component", "migrator").Str("company_id", opts.CompanyID).Logger(),
	}
}

// readSnapshot devuelve el blob crudo y los registros decodificados; (nil, nil, nil) si no hay snapshot.
func (m *Migrator) readSnapshot(ctx context.Context) ([]byte, []legacy.LegacyRecord, error) {
	blob, ok, err := m.local.Read(ctx, m.opts.SnapshotKey)
	if err != nil {
		return nil, nil, fmt.Errorf("leer snapshot local: %w", err)
	}
	if !ok {
		return nil, nil, nil
	}
	records, err := legacy.DecodeSnapshot(blob)
	if err != nil {
		return nil, nil, err
	}
	return blob, records, nil
}

func (m *Migrator) remoteCount(ctx context.Context) (int, error) {
	n, err := m.remote.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return n, nil
}

// NeedsMigration es true solo si existe un snapshot local no vacío y el almacén remoto no tiene registros.
func (m *Migrator) NeedsMigration(ctx context.Context) (bool, error) {
	_, records, err := m.readSnapshot(ctx)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	n, err := m.remoteCount(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Migrate vuelve a verificar que el remoto esté vacío e inserta cada registro en orden.
// Un registro fallido queda en Errors y no detiene el resto. Al terminar escribe el respaldo
// del snapshot original, haya o no fallos parciales.
func (m *Migrator) Migrate(ctx context.Context) (MigrationRecord, error) {
	result := MigrationRecord{Errors: []string{}}

	n, err := m.remoteCount(ctx)
	if err != nil {
		return result, err
	}
	if n > 0 {
		m.log.Warn().Int("remote_records", n).Msg("migración omitida: el remoto ya tiene datos")
		result.Errors = append(result.Errors, remoteNonEmpty)
		return result, domain.ErrGuardViolation
	}

	blob, records, err := m.readSnapshot(ctx)
	if err != nil {
		return result, err
	}
	if len(records) == 0 {
		m.log.Info().Msg("sin snapshot local; nada que migrar")
		result.Success = true
		return result, nil
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		p, err := legacy.MapRecord(m.opts.CompanyID, i, rec)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("registro %d: %v", i+1, err))
			continue
		}
		if err := m.remote.Insert(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				m.log.Warn().Str("sku", p.SKU).Str("legacy_id", p.LegacyID).Msg("registro ya migrado")
			}
			result.Errors = append(result.Errors, fmt.Sprintf("registro %d (%s): %v", i+1, p.SKU, err))
			continue
		}
		result.MigratedCount++
	}

	if err := m.writeBackup(ctx, blob); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	result.Success = len(result.Errors) == 0
	m.log.Info().
		Int("total", len(records)).
		Int("migrated", result.MigratedCount).
		Int("errors", len(result.Errors)).
		Msg("migración finalizada")
	return result, nil
}

func (m *Migrator) writeBackup(ctx context.Context, snapshot []byte) error {
	env, err := json.Marshal(backupEnvelope{CreatedAt: m.opts.Now().UTC(), Records: json.RawMessage(snapshot)})
	if err != nil {
		return fmt.Errorf("respaldo: %w", err)
	}
	if err := m.local.Write(ctx, m.opts.BackupKey, env); err != nil {
		return fmt.Errorf("respaldo: %w", err)
	}
	return nil
}

// readBackup devuelve el respaldo; ok=false si el slot está vacío.
func (m *Migrator) readBackup(ctx context.Context) (*backupEnvelope, bool, error) {
	blob, ok, err := m.local.Read(ctx, m.opts.BackupKey)
	if err != nil {
		return nil, false, fmt.Errorf("leer respaldo: %w", err)
	}
	if !ok || len(blob) == 0 {
		return nil, false, nil
	}
	var env backupEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, false, fmt.Errorf("%w: respaldo corrupto: %v", domain.ErrInvalidInput, err)
	}
	return &env, true, nil
}

// RestoreFromBackup sobrescribe el snapshot local con el contenido del respaldo. false si no hay respaldo.
func (m *Migrator) RestoreFromBackup(ctx context.Context) (bool, error) {
	env, ok, err := m.readBackup(ctx)
	if err != nil || !ok {
		return false, err
	}
	if err := m.local.Write(ctx, m.opts.SnapshotKey, env.Records); err != nil {
		return false, fmt.Errorf("restaurar snapshot: %w", err)
	}
	m.log.Info().Time("backup_created_at", env.CreatedAt).Msg("snapshot restaurado desde respaldo")
	return true, nil
}

// Import valida y guarda un snapshot heredado (p. ej. exportado del navegador) en el almacén local.
func (m *Migrator) Import(ctx context.Context, blob []byte) (int, error) {
	records, err := legacy.DecodeSnapshot(blob)
	if err != nil {
		return 0, err
	}
	if err := m.local.Write(ctx, m.opts.SnapshotKey, blob); err != nil {
		return 0, fmt.Errorf("guardar snapshot: %w", err)
	}
	return len(records), nil
}

// Status reporta cuántos registros hay en cada lado. Un remoto caído se reporta como error.
func (m *Migrator) Status(ctx context.Context) (Status, error) {
	var st Status
	_, records, err := m.readSnapshot(ctx)
	if err != nil {
		return st, err
	}
	st.LocalRecords = len(records)
	if st.RemoteRecords, err = m.remoteCount(ctx); err != nil {
		return st, err
	}
	_, st.HasBackup, err = m.readBackup(ctx)
	if err != nil {
		return st, err
	}
	st.NeedsMigration = st.LocalRecords > 0 && st.RemoteRecords == 0
	return st, nil
}
