// Package synth synthesizes renderable mesh groups from vessel parameters.
// Every builder is a pure function of its inputs: the same state and config
// always produce the same geometry, so the host can rebuild on any change.
//
// Model frame: world Y is up. A horizontal vessel lies along +X with its
// left tangent plane at x=0; a vertical vessel stands along +Y with the
// bottom tangent at y=0. The shell axis passes through the origin.
// Circumferential angles are degrees with 0 = right, 90 = top, 180 = left,
// 270 = bottom, as seen in the end view.
package synth

import (
	"math"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/sizes"
	"vessel-studio/internal/vessel"
	"vessel-studio/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// Placement is the rigid transform that moves a component from its local
// build frame (base at origin, extending along +Y) onto the shell surface.
type Placement struct {
	Rotation    r3.Rotation
	Translation r3.Vec
}

// SurfacePlacement computes the placement for a component at the given
// axial position (mm from the left tangent) and circumferential angle.
// A non-radial direction substitutes a fixed world direction for the shell
// normal; the component then sits where that direction exits the shell.
// Nozzles and lugs share this routine, so both place identically.
func SurfacePlacement(vs *vessel.State, position, angleDeg float64, dir vessel.NozzleDirection) Placement {
	r := vs.Radius()

	if dir != "" && dir != vessel.DirRadial {
		d := worldDirection(dir)
		return Placement{
			Rotation:    rotationTo(d),
			Translation: r3.Add(axialPoint(vs, position), r3.Scale(r, d)),
		}
	}

	theta := geometry.Radians(angleDeg)
	var radial r3.Vec
	if vs.Orientation == vessel.Vertical {
		// Plan view: 0 = +X, 90 = -Z.
		radial = r3.Vec{X: math.Cos(theta), Z: -math.Sin(theta)}
	} else {
		// End view looking down the long axis: 0 = +Z, 90 = +Y.
		radial = r3.Vec{Y: math.Sin(theta), Z: math.Cos(theta)}
	}
	return Placement{
		Rotation:    rotationTo(radial),
		Translation: r3.Add(axialPoint(vs, position), r3.Scale(r, radial)),
	}
}

// Apply moves a group built in the local component frame into the model
// frame.
func (p Placement) Apply(g *mesh.Group) *mesh.Group {
	return g.Rotate(p.Rotation).Translate(p.Translation)
}

// axialPoint returns the point on the shell centerline at the given axial
// position.
func axialPoint(vs *vessel.State, position float64) r3.Vec {
	if vs.Orientation == vessel.Vertical {
		return r3.Vec{Y: position}
	}
	return r3.Vec{X: position}
}

func worldDirection(dir vessel.NozzleDirection) r3.Vec {
	switch dir {
	case vessel.DirUp:
		return r3.Vec{Y: 1}
	case vessel.DirDown:
		return r3.Vec{Y: -1}
	case vessel.DirHorizontal:
		return r3.Vec{Z: 1}
	default:
		return r3.Vec{Y: 1}
	}
}

// rotationTo returns a rotation taking the local +Y axis onto target
// (unit length). Degenerate anti-parallel targets rotate about X.
func rotationTo(target r3.Vec) r3.Rotation {
	up := r3.Vec{Y: 1}
	dot := r3.Dot(up, target)
	if dot > 1-1e-12 {
		return r3.NewRotation(0, r3.Vec{X: 1})
	}
	if dot < -1+1e-12 {
		return r3.NewRotation(math.Pi, r3.Vec{X: 1})
	}
	axis := r3.Unit(r3.Cross(up, target))
	return r3.NewRotation(math.Acos(geometry.Clamp(dot, -1, 1)), axis)
}

// materialFor returns the component material, substituting the shared
// highlight material when the component is selected.
func materialFor(base string, selected bool) string {
	if selected {
		return sizes.HighlightMaterialKey
	}
	return base
}
