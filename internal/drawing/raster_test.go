package drawing

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestRasterizePNG(t *testing.T) {
	img, err := Rasterize(pngBytes(t, 64, 48), "drawing.png")
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestRasterizeGarbage(t *testing.T) {
	_, err := Rasterize([]byte("not an image at all"), "drawing.bin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drawing.bin")
}

func TestIsPDF(t *testing.T) {
	assert.True(t, isPDF([]byte("anything"), "Vessel-GA.PDF"))
	assert.True(t, isPDF([]byte("%PDF-1.7 ..."), "upload"))
	assert.False(t, isPDF(pngBytes(t, 4, 4), "drawing.png"))
	assert.False(t, isPDF([]byte("%PD"), "short"))
}
