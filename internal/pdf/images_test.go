package pdf

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNGFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, testPNG(t, 60, 40), 0644))
}

func TestNormalizeImage_PNG(t *testing.T) {
	normalized, aspect, err := normalizeImage(testPNG(t, 60, 40))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(normalized, []byte("\x89PNG")))
	assert.InDelta(t, 1.5, aspect, 1e-9)
}

func TestNormalizeImage_JPEGConvertsToPNG(t *testing.T) {
	img, _, err := image.Decode(bytes.NewReader(testPNG(t, 80, 20)))
	require.NoError(t, err)

	var jpegBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpegBuf, img, nil))

	normalized, aspect, err := normalizeImage(jpegBuf.Bytes())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(normalized, []byte("\x89PNG")))
	assert.InDelta(t, 4.0, aspect, 1e-9)
}

func TestNormalizeImage_Garbage(t *testing.T) {
	_, _, err := normalizeImage([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestNormalizeImage_Empty(t *testing.T) {
	_, _, err := normalizeImage(nil)
	assert.Error(t, err)
}
