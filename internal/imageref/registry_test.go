package imageref

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

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRegistry_OpenDecodesPNG(t *testing.T) {
	reg := NewRegistry()
	path := writePNG(t, t.TempDir(), "me.png")

	h, err := reg.Open(path)
	require.NoError(t, err)

	img, err := reg.Get(h)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, "me.png", img.Name)
	assert.Equal(t, 4, img.Img.Bounds().Dx())
}

func TestRegistry_OpenRejectsNonImages(t *testing.T) {
	reg := NewRegistry()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := reg.Open(path)
	assert.Error(t, err)
	assert.Zero(t, reg.Live())

	_, err = reg.Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRegistry_HandlesAreUnique(t *testing.T) {
	reg := NewRegistry()
	img := image.NewGray(image.Rect(0, 0, 1, 1))

	a := reg.Add(img, "a", "png")
	b := reg.Add(img, "b", "png")

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, reg.Live())
}

func TestRegistry_ReleaseTwiceFails(t *testing.T) {
	reg := NewRegistry()
	h := reg.Add(image.NewGray(image.Rect(0, 0, 1, 1)), "a", "png")

	require.NoError(t, reg.Release(h))
	assert.ErrorIs(t, reg.Release(h), ErrUnknownHandle)
	_, err := reg.Get(h)
	assert.ErrorIs(t, err, ErrUnknownHandle)
	assert.Equal(t, 1, reg.Released())
}
