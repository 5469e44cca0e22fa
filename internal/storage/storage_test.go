package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campdirectory/internal/config"
)

func TestNew_SelectsDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.UploadPath = t.TempDir()

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileSystem{}, s)

	cfg.Storage.Driver = "s3"
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, `unknown storage driver "s3"`)
}

func TestFileSystem_UploadReplacesAndDeletes(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileSystem(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Upload(ctx, "photo_1.jpg", strings.NewReader("first"), 5, "image/jpeg"))
	require.NoError(t, fs.Upload(ctx, "photo_1.jpg", strings.NewReader("second"), 6, "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(fs.Root(), "photo_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(fs.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, fs.Delete(ctx, "photo_1.jpg"))
	_, err = os.Stat(filepath.Join(fs.Root(), "photo_1.jpg"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, fs.Delete(ctx, "photo_1.jpg"))
}

func TestFileSystem_NameCannotEscapeRoot(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileSystem(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	require.NoError(t, fs.Upload(context.Background(), "../escape.jpg", strings.NewReader("x"), 1, ""))

	_, err = os.Stat(filepath.Join(dir, "escape.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(fs.Root(), "escape.jpg"))
	assert.NoError(t, err)
}

func TestFileSystem_CanceledContext(t *testing.T) {
	fs, err := NewFileSystem(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, fs.Upload(ctx, "a.jpg", strings.NewReader("x"), 1, ""), context.Canceled)
}
