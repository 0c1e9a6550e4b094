package synth

import (
	"math"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/vessel"

	"gonum.org/v1/gonum/spatial/r3"
)

// Shell builds the pressure envelope: the cylindrical shell between the two
// tangent lines plus both ellipsoidal heads. The long axis follows the
// vessel orientation (X horizontal, Y vertical).
func Shell(vs *vessel.State, selected bool) *mesh.Group {
	r := vs.Radius()
	depth := vs.HeadDepth()

	// Build along +Y from the left/bottom tangent, then lay over for
	// horizontal vessels.
	shell := mesh.Cylinder(r, vs.Length, mesh.DefaultSegments, false)
	top := mesh.EllipsoidCap(r, depth, mesh.DefaultSegments, 12).Translate(r3.Vec{Y: vs.Length})
	bottom := mesh.EllipsoidCap(r, -depth, mesh.DefaultSegments, 12)
	shell.Append(top)
	shell.Append(bottom)

	if vs.Orientation == vessel.Horizontal {
		// +Y onto +X: rotate about Z by -90 degrees.
		shell.Rotate(r3.NewRotation(-math.Pi/2, r3.Vec{Z: 1}))
	}

	g := &mesh.Group{}
	g.Add("shell", materialFor(vs.Visual.MaterialKey, selected), vs.Visual.ShellOpacity, shell)
	return g
}
