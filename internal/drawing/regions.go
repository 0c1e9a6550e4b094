package drawing

import (
	"image"
	"image/draw"

	"vessel-studio/internal/extract"
	"vessel-studio/pkg/geometry"
)

// minRegionPixels is the degenerate-region threshold: rectangles narrower
// or shorter than this in image space are discarded as accidental clicks.
const minRegionPixels = 3

// Regions holds the up-to-three named selection rectangles in image pixel
// space of the full-resolution drawing.
type Regions struct {
	rects map[extract.RegionKind]geometry.RectInt
}

// NewRegions returns an empty region set.
func NewRegions() *Regions {
	return &Regions{rects: make(map[extract.RegionKind]geometry.RectInt)}
}

// SetFromCanvas normalizes a rubber-band rectangle drawn in canvas space
// into image space through the viewport and stores it. Degenerate
// rectangles are discarded and report false.
func (r *Regions) SetFromCanvas(kind extract.RegionKind, view Viewport, a, b geometry.Point2D) bool {
	ia := view.CanvasToImage(a)
	ib := view.CanvasToImage(b)
	rect := geometry.Rect{X: ia.X, Y: ia.Y, Width: ib.X - ia.X, Height: ib.Y - ia.Y}.Normalized()
	return r.Set(kind, rect.ToInt())
}

// Set stores an image-space rectangle, rejecting degenerate ones.
func (r *Regions) Set(kind extract.RegionKind, rect geometry.RectInt) bool {
	if rect.Width < minRegionPixels || rect.Height < minRegionPixels {
		return false
	}
	r.rects[kind] = rect
	return true
}

// Get returns the rectangle for a kind.
func (r *Regions) Get(kind extract.RegionKind) (geometry.RectInt, bool) {
	rect, ok := r.rects[kind]
	return rect, ok
}

// Clear removes one region.
func (r *Regions) Clear(kind extract.RegionKind) {
	delete(r.rects, kind)
}

// HasSide reports whether the required side-view region is defined.
func (r *Regions) HasSide() bool {
	_, ok := r.rects[extract.RegionSide]
	return ok
}

// Count returns the number of defined regions.
func (r *Regions) Count() int {
	return len(r.rects)
}

// cropOrder fixes the ordering of the extraction payload: side always
// first.
var cropOrder = []extract.RegionKind{extract.RegionSide, extract.RegionEnd, extract.RegionTable}

// CropAll cuts every defined region out of the full-resolution source
// image. Crops are always taken from source coordinates, never from the
// zoomed display, so the current viewport has no effect on the output.
func (r *Regions) CropAll(src image.Image) []extract.Crop {
	var out []extract.Crop
	for _, kind := range cropOrder {
		rect, ok := r.rects[kind]
		if !ok {
			continue
		}
		if crop := cropImage(src, rect); crop != nil {
			out = append(out, extract.Crop{Kind: kind, Image: crop})
		}
	}
	return out
}

func cropImage(src image.Image, rect geometry.RectInt) *image.RGBA {
	bounds := src.Bounds()
	r := image.Rect(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height).
		Add(bounds.Min).Intersect(bounds)
	if r.Empty() {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), src, r.Min, draw.Src)
	return out
}
