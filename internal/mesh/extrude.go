package mesh

import (
	"math"

	"vessel-studio/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// ExtrudeRing extrudes a closed 2D profile with a circular hole cut through
// it into a plate of the given thickness. The profile lies in the local XY
// plane and is extruded symmetrically along Z. The outline must be a simple
// counter-clockwise polygon, star-shaped about the hole center, with the
// hole fully inside it, which holds for the tapered pad-eye plate this
// exists for.
func ExtrudeRing(outline []geometry.Point2D, holeCenter geometry.Point2D, holeRadius, thickness float64, segments int) *Mesh {
	m := &Mesh{}
	if len(outline) < 3 || segments < 8 {
		return m
	}
	hz := thickness / 2

	// Resample outline and hole at matching angles about the hole center so
	// the face becomes a simple quad ring.
	outer := make([]geometry.Point2D, segments)
	inner := make([]geometry.Point2D, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		dir := geometry.Point2D{X: math.Cos(a), Y: math.Sin(a)}
		outer[i] = castToOutline(outline, holeCenter, dir)
		inner[i] = geometry.Point2D{X: holeCenter.X + holeRadius*dir.X, Y: holeCenter.Y + holeRadius*dir.Y}
	}

	addRingFace(m, outer, inner, hz, r3.Vec{Z: 1})
	addRingFace(m, outer, inner, -hz, r3.Vec{Z: -1})
	addWall(m, outer, hz, holeCenter, false)
	addWall(m, inner, hz, holeCenter, true)
	return m
}

// castToOutline returns the intersection of the ray (center, dir) with the
// polygon outline, taking the farthest hit so concavities behind the hole
// cannot produce a point inside the hole.
func castToOutline(outline []geometry.Point2D, center, dir geometry.Point2D) geometry.Point2D {
	best := -1.0
	for i := range outline {
		p := outline[i]
		q := outline[(i+1)%len(outline)]
		ex, ey := q.X-p.X, q.Y-p.Y
		// Solve p + t*e = center + s*dir.
		den := dir.X*ey - dir.Y*ex
		if math.Abs(den) < 1e-12 {
			continue
		}
		t := (dir.X*(center.Y-p.Y) - dir.Y*(center.X-p.X)) / den
		if t < 0 || t > 1 {
			continue
		}
		var s float64
		if math.Abs(dir.X) > math.Abs(dir.Y) {
			s = (p.X + t*ex - center.X) / dir.X
		} else {
			s = (p.Y + t*ey - center.Y) / dir.Y
		}
		if s > best {
			best = s
		}
	}
	if best < 0 {
		best = 0
	}
	return geometry.Point2D{X: center.X + best*dir.X, Y: center.Y + best*dir.Y}
}

func addRingFace(m *Mesh, outer, inner []geometry.Point2D, z float64, normal r3.Vec) {
	n := len(outer)
	base := len(m.Positions)
	for i := 0; i < n; i++ {
		m.Positions = append(m.Positions, r3.Vec{X: outer[i].X, Y: outer[i].Y, Z: z})
		m.Normals = append(m.Normals, normal)
	}
	for i := 0; i < n; i++ {
		m.Positions = append(m.Positions, r3.Vec{X: inner[i].X, Y: inner[i].Y, Z: z})
		m.Normals = append(m.Normals, normal)
	}
	front := normal.Z > 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		o0, o1 := base+i, base+j
		h0, h1 := base+n+i, base+n+j
		if front {
			m.Tris = append(m.Tris, [3]int{o0, o1, h0}, [3]int{h0, o1, h1})
		} else {
			m.Tris = append(m.Tris, [3]int{o0, h0, o1}, [3]int{h0, h1, o1})
		}
	}
}

func addWall(m *Mesh, loop []geometry.Point2D, hz float64, center geometry.Point2D, inward bool) {
	n := len(loop)
	base := len(m.Positions)
	for i := 0; i < n; i++ {
		nrm := r3.Unit(r3.Vec{X: loop[i].X - center.X, Y: loop[i].Y - center.Y})
		if inward {
			nrm = r3.Scale(-1, nrm)
		}
		m.Positions = append(m.Positions,
			r3.Vec{X: loop[i].X, Y: loop[i].Y, Z: hz},
			r3.Vec{X: loop[i].X, Y: loop[i].Y, Z: -hz})
		m.Normals = append(m.Normals, nrm, nrm)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		f0, b0 := base+2*i, base+2*i+1
		f1, b1 := base+2*j, base+2*j+1
		if inward {
			m.Tris = append(m.Tris, [3]int{f0, b0, f1}, [3]int{f1, b0, b1})
		} else {
			m.Tris = append(m.Tris, [3]int{f0, f1, b0}, [3]int{f1, b1, b0})
		}
	}
}
