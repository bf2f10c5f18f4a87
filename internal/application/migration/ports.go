package migration

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// LocalSnapshotStore almacén clave/valor local con los registros heredados.
// Read devuelve ok=false si la clave no existe.
type LocalSnapshotStore interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, blob []byte) error
}

// RemoteProductStore almacén remoto de productos de una empresa.
type RemoteProductStore interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, p *entity.Product) error
}
