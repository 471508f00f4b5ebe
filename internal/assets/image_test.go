package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 200, G: 10, B: 20, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImagePNG(t *testing.T) {
	img, err := DecodeImage(encodedPNG(t))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{200, 10, 20}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestDecodeImageRejects(t *testing.T) {
	_, err := DecodeImage([]byte("solid cube\nendsolid cube\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	// a GIF is recognised but not a texture format
	_, err = DecodeImage([]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sky.bin")
	require.NoError(t, os.WriteFile(path, encodedPNG(t), 0o644))

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
