package interaction

import (
	"math"

	"vessel-studio/internal/scene"
	"vessel-studio/internal/vessel"
	"vessel-studio/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// ResolveDrag converts a pointer ray into the dragged component's native
// parameters. The ray is intersected with a proxy surface standing in for
// the shell: the shell cylinder first, falling back to a camera-facing
// plane through the vessel axis when the ray misses the cylinder (as
// out-of-canvas pointer positions do). The recovered point is reduced to an axial
// position clamped to [0, length] and an angle wrapped to [0, 360).
// fallbackAngle is reused when the point lies too close to the axis to
// define a direction.
func ResolveDrag(vs *vessel.State, ray scene.Ray, fallbackAngle float64) (position, angle float64) {
	axisDir := r3.Vec{X: 1}
	if vs.Orientation == vessel.Vertical {
		axisDir = r3.Vec{Y: 1}
	}

	var p r3.Vec
	if t, ok := scene.RayCylinder(ray, r3.Vec{}, axisDir, vs.Radius()); ok {
		p = ray.At(t)
	} else {
		// Plane through the axis, facing back along the ray.
		normal := r3.Sub(ray.Dir, r3.Scale(r3.Dot(ray.Dir, axisDir), axisDir))
		if r3.Norm(normal) < 1e-9 {
			return geometry.Clamp(0, 0, vs.Length), geometry.WrapDegrees(fallbackAngle)
		}
		normal = r3.Unit(normal)
		t, ok := scene.RayPlane(ray, r3.Vec{}, normal)
		if !ok {
			// Ray parallel to the plane: project the origin instead so even
			// degenerate input yields clamped, wrapped values.
			p = ray.Origin
		} else {
			p = ray.At(t)
		}
	}

	axial := r3.Dot(p, axisDir)
	position = geometry.Clamp(axial, 0, vs.Length)

	radial := r3.Sub(p, r3.Scale(axial, axisDir))
	if r3.Norm(radial) < 1e-9 {
		return position, geometry.WrapDegrees(fallbackAngle)
	}

	if vs.Orientation == vessel.Vertical {
		// Plan view convention: 0 = +X, 90 = -Z.
		angle = geometry.Degrees(math.Atan2(-radial.Z, radial.X))
	} else {
		// End view convention: 0 = +Z, 90 = +Y.
		angle = geometry.Degrees(math.Atan2(radial.Y, radial.Z))
	}
	return position, geometry.WrapDegrees(angle)
}
