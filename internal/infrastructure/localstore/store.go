// Package localstore almacén clave/valor local en SQLite con la instantánea heredada del inventario
// y su respaldo.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/Produccion-api/internal/application/migration"
)

var _ migration.LocalSnapshotStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

// MemoryPath abre una base en memoria (pruebas).
const MemoryPath = ":memory:"

// Store conexión SQLite del almacén local.
type Store struct {
	conn *sql.DB
	now  func() time.Time
}

// Open abre (o crea) la base en path y asegura el esquema.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("localstore: crear directorio: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: abrir: %w", err)
	}
	// una sola conexión: SQLite serializa escrituras y ":memory:" vive en esa conexión
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("localstore: busy timeout: %w", err)
	}
	if path != MemoryPath {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("localstore: WAL: %w", err)
		}
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("localstore: esquema: %w", err)
	}
	return &Store{conn: conn, now: time.Now}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Read valor de key; ok=false si no existe.
func (s *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var blob []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("localstore: leer %q: %w", key, err)
	}
	return blob, true, nil
}

// Write reemplaza el valor de key.
func (s *Store) Write(ctx context.Context, key string, blob []byte) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, blob, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("localstore: escribir %q: %w", key, err)
	}
	return nil
}

// Entry metadatos de una clave guardada.
type Entry struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// List claves guardadas con su tamaño, en orden alfabético.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT key, length(value), updated_at FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("localstore: listar: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Key, &e.Size, &ts); err != nil {
			return nil, fmt.Errorf("localstore: listar: %w", err)
		}
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
