// Package drawing implements the drawing import pipeline: uploading and
// rasterizing an engineering drawing, selecting named regions on a pan/zoom
// canvas, cropping them at source resolution, and running the external
// extraction call whose result the host merges into vessel state.
package drawing

import (
	"vessel-studio/pkg/geometry"
)

const (
	minZoom = 0.05
	maxZoom = 16.0
)

// Viewport maps between canvas pixels (the widget's drawing surface, after
// the UI has already subtracted the widget offset from screen coordinates)
// and image pixels of the uploaded drawing:
//
//	canvas = image*Zoom + Offset
//
// Pan moves Offset; wheel zoom is anchored at the cursor so the image point
// under it stays fixed.
type Viewport struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// NewViewport returns the identity view.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// CanvasToImage converts a canvas point to image coordinates.
func (v Viewport) CanvasToImage(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (p.X - v.OffsetX) / v.Zoom,
		Y: (p.Y - v.OffsetY) / v.Zoom,
	}
}

// ImageToCanvas converts an image point to canvas coordinates.
func (v Viewport) ImageToCanvas(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*v.Zoom + v.OffsetX,
		Y: p.Y*v.Zoom + v.OffsetY,
	}
}

// Pan shifts the view by a canvas-space delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}

// ZoomAt scales the zoom by factor, anchored at the given canvas point:
// the image point under the cursor maps to the same canvas point before and
// after.
func (v Viewport) ZoomAt(anchor geometry.Point2D, factor float64) Viewport {
	newZoom := geometry.Clamp(v.Zoom*factor, minZoom, maxZoom)
	imagePt := v.CanvasToImage(anchor)
	v.Zoom = newZoom
	v.OffsetX = anchor.X - imagePt.X*newZoom
	v.OffsetY = anchor.Y - imagePt.Y*newZoom
	return v
}
