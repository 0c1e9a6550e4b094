package importview

import (
	"image"
	"image/color"

	"vessel-studio/internal/drawing"
	"vessel-studio/internal/extract"
	"vessel-studio/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const zoomStep = 1.2

var regionColors = map[extract.RegionKind]color.RGBA{
	extract.RegionSide:  {R: 70, G: 160, B: 255, A: 255},
	extract.RegionEnd:   {R: 90, G: 200, B: 120, A: 255},
	extract.RegionTable: {R: 250, G: 170, B: 60, A: 255},
}

// drawingCanvas displays the uploaded drawing with pan, wheel zoom, and
// rubber-band region selection. Middle or right drags pan; after ArmRegion
// the next primary drag draws that region's rectangle.
type drawingCanvas struct {
	widget.BaseWidget

	pipeline *drawing.Pipeline
	raster   *fynecanvas.Raster

	armedKind extract.RegionKind // Empty when primary drags are inert
	banding   bool
	panning   bool
	bandStart fyne.Position
	bandEnd   fyne.Position

	onRegionSet func(kind extract.RegionKind, ok bool)
}

func newDrawingCanvas(pipeline *drawing.Pipeline) *drawingCanvas {
	dc := &drawingCanvas{pipeline: pipeline}
	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *drawingCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.raster)
}

func (dc *drawingCanvas) MinSize() fyne.Size {
	return fyne.NewSize(480, 360)
}

// ArmRegion makes the next drag draw the given region.
func (dc *drawingCanvas) ArmRegion(kind extract.RegionKind) {
	dc.armedKind = kind
}

// draw composites the drawing through the viewport transform, then overlays
// the stored region rectangles and any in-progress rubber band.
func (dc *drawingCanvas) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 40
		}
	}

	src := dc.pipeline.Source()
	if src == nil {
		return img
	}

	// Raster pixels and widget points differ by the device scale.
	scale := dc.deviceScale(w)
	view := dc.pipeline.View()
	xdraw.NearestNeighbor.Transform(img, f64.Aff3{
		view.Zoom * scale, 0, view.OffsetX * scale,
		0, view.Zoom * scale, view.OffsetY * scale,
	}, src, src.Bounds(), xdraw.Src, nil)

	for kind, col := range regionColors {
		rect, ok := dc.pipeline.Regions().Get(kind)
		if !ok {
			continue
		}
		a := view.ImageToCanvas(geometry.Point2D{X: float64(rect.X), Y: float64(rect.Y)})
		b := view.ImageToCanvas(geometry.Point2D{
			X: float64(rect.X + rect.Width),
			Y: float64(rect.Y + rect.Height),
		})
		drawRectOutline(img, a.X*scale, a.Y*scale, b.X*scale, b.Y*scale, col)
	}

	if dc.banding {
		col := regionColors[dc.armedKind]
		drawRectOutline(img,
			float64(dc.bandStart.X)*scale, float64(dc.bandStart.Y)*scale,
			float64(dc.bandEnd.X)*scale, float64(dc.bandEnd.Y)*scale, col)
	}
	return img
}

func (dc *drawingCanvas) deviceScale(rasterW int) float64 {
	size := dc.Size()
	if size.Width <= 0 {
		return 1
	}
	return float64(rasterW) / float64(size.Width)
}

func drawRectOutline(img *image.RGBA, x1, y1, x2, y2 float64, col color.RGBA) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	r := image.Rect(int(x1), int(y1), int(x2), int(y2)).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, col)
		img.SetRGBA(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, col)
		img.SetRGBA(r.Max.X-1, y, col)
	}
}

func (dc *drawingCanvas) MouseDown(ev *desktop.MouseEvent) {
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		if dc.armedKind != "" {
			dc.banding = true
			dc.bandStart = ev.Position
			dc.bandEnd = ev.Position
		}
	case desktop.MouseButtonSecondary, desktop.MouseButtonTertiary:
		dc.panning = true
	}
}

func (dc *drawingCanvas) MouseUp(ev *desktop.MouseEvent) {
	switch ev.Button {
	case desktop.MouseButtonPrimary:
		dc.finishBand()
	case desktop.MouseButtonSecondary, desktop.MouseButtonTertiary:
		dc.panning = false
	}
}

func (dc *drawingCanvas) Dragged(ev *fyne.DragEvent) {
	if dc.banding {
		dc.bandEnd = ev.Position
		dc.Refresh()
		return
	}
	if !dc.panning {
		return
	}
	view := dc.pipeline.View().Pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	dc.pipeline.SetView(view)
	dc.Refresh()
}

func (dc *drawingCanvas) DragEnd() {
	dc.finishBand()
	dc.panning = false
}

func (dc *drawingCanvas) finishBand() {
	if !dc.banding {
		return
	}
	dc.banding = false
	kind := dc.armedKind
	dc.armedKind = ""

	ok := dc.pipeline.Regions().SetFromCanvas(kind, dc.pipeline.View(),
		geometry.Point2D{X: float64(dc.bandStart.X), Y: float64(dc.bandStart.Y)},
		geometry.Point2D{X: float64(dc.bandEnd.X), Y: float64(dc.bandEnd.Y)})
	if dc.onRegionSet != nil {
		dc.onRegionSet(kind, ok)
	}
	dc.Refresh()
}

// Scrolled zooms anchored at the cursor.
func (dc *drawingCanvas) Scrolled(ev *fyne.ScrollEvent) {
	factor := zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	anchor := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	dc.pipeline.SetView(dc.pipeline.View().ZoomAt(anchor, factor))
	dc.Refresh()
}
