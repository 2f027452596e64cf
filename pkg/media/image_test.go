package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressImage(t *testing.T) {
	t.Run("Should shrink the longer side to the limit", func(t *testing.T) {
		out, err := CompressImage(pngBytes(t, 1000, 500), 200, 80)
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 200, cfg.Width)
		assert.Equal(t, 100, cfg.Height)
	})

	t.Run("Should keep small images at their size", func(t *testing.T) {
		out, err := CompressImage(pngBytes(t, 40, 60), 200, 80)
		require.NoError(t, err)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Width)
		assert.Equal(t, 60, cfg.Height)
	})

	t.Run("Should fail on non-images", func(t *testing.T) {
		_, err := CompressImage([]byte("hello"), 200, 80)
		assert.Error(t, err)
	})
}

func TestDetectImageType(t *testing.T) {
	ct, err := DetectImageType(pngBytes(t, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, err = DetectImageType([]byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestScaledSize(t *testing.T) {
	w, h := scaledSize(300, 1200, 600)
	assert.Equal(t, 150, w)
	assert.Equal(t, 600, h)
}
