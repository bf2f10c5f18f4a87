package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadWrite(t *testing.T) {
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	_, ok, err := s.Read(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, "products", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Write(ctx, "products", []byte(`[]`)))

	blob, ok, err := s.Read(ctx, "products")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(blob))
}

func TestStore_List(t *testing.T) {
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	defer s.Close()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "products_backup", []byte("abc")))
	require.NoError(t, s.Write(ctx, "products", []byte("abcdef")))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "products", entries[0].Key)
	assert.Equal(t, 6, entries[0].Size)
	assert.True(t, fixed.Equal(entries[1].UpdatedAt))
}

func TestStore_PersistsOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "local.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	blob, ok, err := s2.Read(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(blob))
}
