// Package extract defines the external structured-extraction boundary of
// the drawing import pipeline: cropped drawing regions go in, a structured
// vessel description comes out. The transport is opaque to the rest of the
// application; implementations may call a remote service or run local OCR.
package extract

import (
	"context"
	"image"

	"vessel-studio/internal/vessel"
)

// RegionKind names the three croppable drawing regions.
type RegionKind string

const (
	RegionSide  RegionKind = "side"  // Side elevation, required
	RegionEnd   RegionKind = "end"   // End view, optional
	RegionTable RegionKind = "table" // Nozzle schedule table, optional
)

// Crop is one cropped region at full source resolution.
type Crop struct {
	Kind  RegionKind
	Image *image.RGBA
}

// Result is the structured vessel description produced by extraction. It
// mirrors the vessel state shape; zero values mean "not determined" and are
// left untouched on apply.
type Result struct {
	ID          int                   `json:"id"`
	Length      float64               `json:"length"`
	HeadRatio   float64               `json:"headRatio"`
	Orientation string                `json:"orientation"`
	Nozzles     []vessel.NozzleConfig `json:"nozzles"`
	Saddles     []vessel.SaddleConfig `json:"saddles"`
}

// ApplyTo folds the result into a vessel state exactly like a manual edit:
// determined fields overwrite, undetermined fields keep their prior values.
// Nozzle and saddle lists replace the existing lists when the result
// carries them (including explicitly empty lists).
func (r *Result) ApplyTo(vs *vessel.State) {
	if r.ID != 0 {
		vs.ID = r.ID
	}
	if r.Length > 0 {
		vs.Length = r.Length
	}
	if vessel.ValidHeadRatio(r.HeadRatio) {
		vs.HeadRatio = r.HeadRatio
	}
	switch vessel.Orientation(r.Orientation) {
	case vessel.Horizontal, vessel.Vertical:
		vs.Orientation = vessel.Orientation(r.Orientation)
	}
	if r.Nozzles != nil {
		vs.Nozzles = append([]vessel.NozzleConfig(nil), r.Nozzles...)
	}
	if r.Saddles != nil {
		vs.Saddles = append([]vessel.SaddleConfig(nil), r.Saddles...)
	}
	// Imported positions obey the same clamp as interactive edits.
	for i := range vs.Nozzles {
		if vs.Nozzles[i].Position > vs.Length {
			vs.Nozzles[i].Position = vs.Length
		}
		if vs.Nozzles[i].Position < 0 {
			vs.Nozzles[i].Position = 0
		}
	}
	for i := range vs.Saddles {
		if vs.Saddles[i].Position > vs.Length {
			vs.Saddles[i].Position = vs.Length
		}
		if vs.Saddles[i].Position < 0 {
			vs.Saddles[i].Position = 0
		}
	}
}

// Extractor turns an ordered crop set (side first) into a Result. Failures
// must leave no partial state behind; the pipeline reverts to region
// selection on any error.
type Extractor interface {
	Extract(ctx context.Context, crops []Crop) (*Result, error)
}
