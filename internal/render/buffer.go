// Package render draws the reconciled scene into an RGBA image with a
// software rasterizer: perspective projection through the scene camera,
// z-buffered triangle fill, Lambert + Blinn-Phong shading from the active
// lighting preset, and decal sampling on the shell surface.
package render

import "math"

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // View depth per pixel, initialized to +inf
}

// NewFrameBuffer allocates a framebuffer cleared to the background color.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
	fb.Clear(26, 30, 36)
	return fb
}

// Clear fills the color buffer with an opaque background.
func (fb *FrameBuffer) Clear(r, g, b uint8) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = r
		fb.Color[i+1] = g
		fb.Color[i+2] = b
		fb.Color[i+3] = 255
	}
}
