package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "42")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStore_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write(context.Background(), "-1001", []byte(`{"transactions": []}`)))

	data, err := store.Read(context.Background(), "-1001")
	require.NoError(t, err)
	assert.Equal(t, `{"transactions": []}`, string(data))
	assert.FileExists(t, filepath.Join(dir, "data_-1001.json"))
}

func TestStore_WriteOverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write(context.Background(), "7", []byte("first")))
	require.NoError(t, store.Write(context.Background(), "7", []byte("second")))

	data, err := store.Read(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data_7.json", entries[0].Name())
}

func TestStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ledgers")
	_, err := NewStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestStore_CanceledContext(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Write(ctx, "1", []byte("x")), context.Canceled)
	_, err = store.Read(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}
