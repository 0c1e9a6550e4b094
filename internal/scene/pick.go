package scene

import (
	"math"

	"vessel-studio/internal/mesh"

	"gonum.org/v1/gonum/spatial/r3"
)

// Hit is the result of a successful pick.
type Hit struct {
	Key   Key
	Index int
	T     float64
	Point r3.Vec
}

// Pick intersects the ray with every pickable node not excluded by kind and
// returns the nearest hit. The shell is never pickable and locked component
// kinds are excluded before intersection, so a locked component can never
// shadow an unlocked one behind it.
func (s *Scene) Pick(ray Ray, excluded map[Kind]bool) (Hit, bool) {
	best := Hit{T: math.Inf(1)}
	found := false
	for _, n := range s.Nodes() {
		if !n.Pickable || excluded[n.Key.Kind] {
			continue
		}
		t, ok := rayGroup(ray, n.Group)
		if ok && t < best.T {
			best = Hit{Key: n.Key, Index: n.Index, T: t, Point: ray.At(t)}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

func rayGroup(ray Ray, g *mesh.Group) (float64, bool) {
	if g == nil {
		return 0, false
	}
	best := math.Inf(1)
	found := false
	for _, part := range g.Parts {
		if part.Mesh == nil {
			continue
		}
		if t, ok := rayMesh(ray, part.Mesh); ok && t < best {
			best = t
			found = true
		}
	}
	return best, found
}

func rayMesh(ray Ray, m *mesh.Mesh) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, tri := range m.Tris {
		t, ok := rayTriangle(ray, m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]])
		if ok && t < best {
			best = t
			found = true
		}
	}
	return best, found
}

// rayTriangle is Moller-Trumbore without backface culling; picking should
// hit a component from any side.
func rayTriangle(ray Ray, a, b, c r3.Vec) (float64, bool) {
	const eps = 1e-9
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	p := r3.Cross(ray.Dir, e2)
	det := r3.Dot(e1, p)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := r3.Sub(ray.Origin, a)
	u := r3.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := r3.Dot(ray.Dir, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := r3.Dot(e2, q) * inv
	if t <= eps {
		return 0, false
	}
	return t, true
}

// RayCylinder intersects the ray with an infinite cylinder of the given
// radius around an axis through origin axisOrigin with unit direction
// axisDir, returning the nearest positive parameter.
func RayCylinder(ray Ray, axisOrigin, axisDir r3.Vec, radius float64) (float64, bool) {
	// Project out the axis component and solve the 2D circle intersection.
	d := r3.Sub(ray.Dir, r3.Scale(r3.Dot(ray.Dir, axisDir), axisDir))
	oc := r3.Sub(ray.Origin, axisOrigin)
	o := r3.Sub(oc, r3.Scale(r3.Dot(oc, axisDir), axisDir))

	a := r3.Dot(d, d)
	if a < 1e-12 {
		return 0, false
	}
	b := 2 * r3.Dot(o, d)
	c := r3.Dot(o, o) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > 1e-9 {
		return t0, true
	}
	if t1 > 1e-9 {
		return t1, true
	}
	return 0, false
}

// RayPlane intersects the ray with the plane through point with the given
// normal.
func RayPlane(ray Ray, point, normal r3.Vec) (float64, bool) {
	den := r3.Dot(ray.Dir, normal)
	if math.Abs(den) < 1e-9 {
		return 0, false
	}
	t := r3.Dot(r3.Sub(point, ray.Origin), normal) / den
	if t <= 1e-9 {
		return 0, false
	}
	return t, true
}
