package synth

import (
	"vessel-studio/internal/mesh"
	"vessel-studio/internal/vessel"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// saddleWidth is the axial footprint of a support saddle.
	saddleWidth = 400.0

	// Saddle proportions relative to the shell radius. The saddle top
	// overlaps the shell slightly so the cradle reads as in contact.
	saddleHeightFactor = 1.1
	saddleDepthFactor  = 1.2
	saddleOverlap      = 0.4
)

// Saddle builds one support saddle below the shell centerline. Saddles are
// a horizontal-vessel concept: vertical orientation yields an empty group
// regardless of the saddle list.
func Saddle(vs *vessel.State, cfg vessel.SaddleConfig, selected bool) *mesh.Group {
	g := &mesh.Group{}
	if vs.Orientation != vessel.Horizontal {
		return g
	}

	r := vs.Radius()
	height := r * saddleHeightFactor
	depth := r * saddleDepthFactor

	box := mesh.Box(saddleWidth, height, depth).
		Translate(r3.Vec{X: cfg.Position, Y: -(height + r*saddleOverlap)})

	mat := cfg.Color
	if mat == "" {
		mat = "painted-gray"
	}
	g.Add("saddle", materialFor(mat, selected), 1.0, box)
	return g
}

// Saddles builds all saddles for the vessel; the result is empty for
// vertical vessels.
func Saddles(vs *vessel.State, selectedIndex int) []*mesh.Group {
	out := make([]*mesh.Group, 0, len(vs.Saddles))
	if vs.Orientation != vessel.Horizontal {
		return out
	}
	for i, cfg := range vs.Saddles {
		out = append(out, Saddle(vs, cfg, i == selectedIndex))
	}
	return out
}
