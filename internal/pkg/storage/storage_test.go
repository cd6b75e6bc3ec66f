package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "avatars/ab/one.png", bytes.NewReader([]byte("first"))))
	require.NoError(t, s.Save(ctx, "avatars/ab/one.png", bytes.NewReader([]byte("second"))))

	rc, err := s.Get(ctx, "avatars/ab/one.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	require.NoError(t, s.Delete(ctx, "avatars/ab/one.png"))
	require.NoError(t, s.Delete(ctx, "avatars/ab/one.png"))

	_, err = s.Get(ctx, "avatars/ab/one.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../outside.png", "avatars/../../outside.png", ".", ""} {
		assert.ErrorIs(t, s.Save(ctx, p, bytes.NewReader(nil)), ErrInvalidPath, p)
		_, err := s.Get(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestSquareThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 250))
	for x := 0; x < 400; x++ {
		for y := 0; y < 250; y++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	thumb, err := NewImageProcessor().SquareThumbnail(&buf, 120)
	require.NoError(t, err)

	img, format, err := image.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	_, err = NewImageProcessor().SquareThumbnail(bytes.NewReader([]byte("not an image")), 120)
	assert.Error(t, err)
}
