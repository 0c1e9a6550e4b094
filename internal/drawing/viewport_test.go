package drawing

import (
	"testing"

	"vessel-studio/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Zoom: 2.5, OffsetX: 120, OffsetY: -40}

	p := geometry.Point2D{X: 333, Y: 77}
	back := v.ImageToCanvas(v.CanvasToImage(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestViewportPan(t *testing.T) {
	v := NewViewport().Pan(30, -20).Pan(5, 5)
	assert.Equal(t, 35.0, v.OffsetX)
	assert.Equal(t, -15.0, v.OffsetY)
	assert.Equal(t, 1.0, v.Zoom)
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	v := NewViewport().Pan(30, 40)
	anchor := geometry.Point2D{X: 100, Y: 100}
	imagePt := v.CanvasToImage(anchor)

	v = v.ZoomAt(anchor, 1.5)
	assert.InDelta(t, 1.5, v.Zoom, 1e-9)

	// The image point under the cursor still maps to the anchor.
	back := v.ImageToCanvas(imagePt)
	assert.InDelta(t, anchor.X, back.X, 1e-9)
	assert.InDelta(t, anchor.Y, back.Y, 1e-9)
}

func TestZoomAtClampsRange(t *testing.T) {
	v := NewViewport()
	v = v.ZoomAt(geometry.Point2D{}, 1e6)
	assert.Equal(t, maxZoom, v.Zoom)

	v = v.ZoomAt(geometry.Point2D{}, 1e-9)
	assert.Equal(t, minZoom, v.Zoom)
}
