package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImageStore_SaveImage(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, zap.NewNop())

	content := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}
	path, err := store.SaveImage("passbook.PNG", content)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "bankbook_"))
	assert.True(t, strings.HasSuffix(path, ".png"), "extension is lowercased")

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestImageStore_RejectsUnsupportedExtension(t *testing.T) {
	store := NewImageStore(t.TempDir(), zap.NewNop())

	_, err := store.SaveImage("malware.exe", []byte{0x4d, 0x5a})
	assert.Error(t, err)
}

func TestImageStore_UniqueNames(t *testing.T) {
	store := NewImageStore(t.TempDir(), zap.NewNop())

	first, err := store.SaveImage("a.jpg", []byte{1})
	require.NoError(t, err)
	second, err := store.SaveImage("a.jpg", []byte{2})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestImageStore_CreatesBaseDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewImageStore(dir, zap.NewNop())

	path, err := store.SaveImage("scan.gif", []byte{0x47, 0x49, 0x46})

	require.NoError(t, err)
	assert.FileExists(t, path)
}
