package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSegments is the circumferential tessellation used by the synthesis
// layer. High enough to look round at viewport sizes, low enough to rebuild
// on every parameter change.
const DefaultSegments = 48

// Cylinder builds a cylinder of the given radius along +Y from y=0 to
// y=length, optionally capped with flat discs at both ends.
func Cylinder(radius, length float64, segments int, capped bool) *Mesh {
	m := &Mesh{}
	if segments < 3 {
		segments = 3
	}

	// Two rings of side vertices with radial normals.
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		nx, nz := math.Cos(a), math.Sin(a)
		m.Positions = append(m.Positions,
			r3.Vec{X: radius * nx, Y: 0, Z: radius * nz},
			r3.Vec{X: radius * nx, Y: length, Z: radius * nz})
		n := r3.Vec{X: nx, Z: nz}
		m.Normals = append(m.Normals, n, n)
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		b0, t0 := 2*i, 2*i+1
		b1, t1 := 2*j, 2*j+1
		m.Tris = append(m.Tris, [3]int{b0, t0, b1}, [3]int{b1, t0, t1})
	}

	if capped {
		m.Append(Disc(radius, 0, segments, r3.Vec{Y: -1}))
		m.Append(Disc(radius, length, segments, r3.Vec{Y: 1}))
	}
	return m
}

// Disc builds a flat disc of the given radius in the XZ plane at height y.
// The normal argument picks the facing direction (+Y or -Y) and winding.
func Disc(radius, y float64, segments int, normal r3.Vec) *Mesh {
	m := &Mesh{}
	if segments < 3 {
		segments = 3
	}
	m.Positions = append(m.Positions, r3.Vec{Y: y})
	m.Normals = append(m.Normals, normal)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		m.Positions = append(m.Positions, r3.Vec{X: radius * math.Cos(a), Y: y, Z: radius * math.Sin(a)})
		m.Normals = append(m.Normals, normal)
	}
	up := normal.Y >= 0
	for i := 0; i < segments; i++ {
		j := (i+1)%segments + 1
		if up {
			m.Tris = append(m.Tris, [3]int{0, i + 1, j})
		} else {
			m.Tris = append(m.Tris, [3]int{0, j, i + 1})
		}
	}
	return m
}

// EllipsoidCap builds half an ellipsoid of the given equatorial radius and
// polar depth, domed along +Y from y=0. Pass a negative depth to dome along
// -Y (the left head of a horizontal vessel after placement rotation).
func EllipsoidCap(radius, depth float64, segments, rings int) *Mesh {
	m := &Mesh{}
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	sign := 1.0
	if depth < 0 {
		sign = -1
		depth = -depth
	}

	// Rings from equator (phi=0) to pole (phi=pi/2).
	for r := 0; r <= rings; r++ {
		phi := (math.Pi / 2) * float64(r) / float64(rings)
		ringRad := radius * math.Cos(phi)
		y := sign * depth * math.Sin(phi)
		for i := 0; i < segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			cx, cz := math.Cos(a), math.Sin(a)
			m.Positions = append(m.Positions, r3.Vec{X: ringRad * cx, Y: y, Z: ringRad * cz})
			// Ellipsoid gradient normal: (x/rx^2, y/ry^2, z/rz^2).
			n := r3.Unit(r3.Vec{
				X: ringRad * cx / (radius * radius),
				Y: y / (depth * depth),
				Z: ringRad * cz / (radius * radius),
			})
			if r == rings {
				n = r3.Vec{Y: sign}
			}
			m.Normals = append(m.Normals, n)
		}
	}
	for r := 0; r < rings; r++ {
		for i := 0; i < segments; i++ {
			j := (i + 1) % segments
			a0 := r*segments + i
			a1 := r*segments + j
			b0 := (r+1)*segments + i
			b1 := (r+1)*segments + j
			if sign > 0 {
				m.Tris = append(m.Tris, [3]int{a0, b0, a1}, [3]int{a1, b0, b1})
			} else {
				m.Tris = append(m.Tris, [3]int{a0, a1, b0}, [3]int{a1, b1, b0})
			}
		}
	}
	return m
}

// Box builds an axis-aligned box centered at the origin in X/Z with its
// base at y=0 and top at y=height.
func Box(width, height, depth float64) *Mesh {
	hw, hd := width/2, depth/2
	m := &Mesh{}
	faces := []struct {
		n       r3.Vec
		corners [4]r3.Vec
	}{
		{r3.Vec{Y: 1}, [4]r3.Vec{{X: -hw, Y: height, Z: -hd}, {X: -hw, Y: height, Z: hd}, {X: hw, Y: height, Z: hd}, {X: hw, Y: height, Z: -hd}}},
		{r3.Vec{Y: -1}, [4]r3.Vec{{X: -hw, Z: -hd}, {X: hw, Z: -hd}, {X: hw, Z: hd}, {X: -hw, Z: hd}}},
		{r3.Vec{X: 1}, [4]r3.Vec{{X: hw, Z: -hd}, {X: hw, Y: height, Z: -hd}, {X: hw, Y: height, Z: hd}, {X: hw, Z: hd}}},
		{r3.Vec{X: -1}, [4]r3.Vec{{X: -hw, Z: hd}, {X: -hw, Y: height, Z: hd}, {X: -hw, Y: height, Z: -hd}, {X: -hw, Z: -hd}}},
		{r3.Vec{Z: 1}, [4]r3.Vec{{X: hw, Z: hd}, {X: hw, Y: height, Z: hd}, {X: -hw, Y: height, Z: hd}, {X: -hw, Z: hd}}},
		{r3.Vec{Z: -1}, [4]r3.Vec{{X: -hw, Z: -hd}, {X: -hw, Y: height, Z: -hd}, {X: hw, Y: height, Z: -hd}, {X: hw, Z: -hd}}},
	}
	for _, f := range faces {
		base := len(m.Positions)
		for _, c := range f.corners {
			m.Positions = append(m.Positions, c)
			m.Normals = append(m.Normals, f.n)
		}
		m.Tris = append(m.Tris, [3]int{base, base + 1, base + 2}, [3]int{base, base + 2, base + 3})
	}
	return m
}

// Cone builds a truncated cone (frustum) along +Y from y=0 (bottomRadius)
// to y=length (topRadius), uncapped.
func Cone(bottomRadius, topRadius, length float64, segments int) *Mesh {
	m := &Mesh{}
	if segments < 3 {
		segments = 3
	}
	slope := (bottomRadius - topRadius) / length
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		cx, cz := math.Cos(a), math.Sin(a)
		m.Positions = append(m.Positions,
			r3.Vec{X: bottomRadius * cx, Y: 0, Z: bottomRadius * cz},
			r3.Vec{X: topRadius * cx, Y: length, Z: topRadius * cz})
		n := r3.Unit(r3.Vec{X: cx, Y: slope, Z: cz})
		m.Normals = append(m.Normals, n, n)
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		b0, t0 := 2*i, 2*i+1
		b1, t1 := 2*j, 2*j+1
		m.Tris = append(m.Tris, [3]int{b0, t0, b1}, [3]int{b1, t0, t1})
	}
	return m
}
