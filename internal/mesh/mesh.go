// Package mesh provides triangle mesh containers and parametric primitive
// builders for vessel components. Meshes are value-oriented: builders return
// fresh meshes and transforms return modified copies in place on the
// receiver's slices, so callers that need the original must Clone first.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Normals are per-vertex and assumed unit
// length. Triangles index into Positions/Normals with counter-clockwise
// winding for outward faces.
type Mesh struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	Tris      [][3]int
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Positions: append([]r3.Vec(nil), m.Positions...),
		Normals:   append([]r3.Vec(nil), m.Normals...),
		Tris:      append([][3]int(nil), m.Tris...),
	}
	return out
}

// Append merges other into m, offsetting triangle indices.
func (m *Mesh) Append(other *Mesh) {
	base := len(m.Positions)
	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	for _, t := range other.Tris {
		m.Tris = append(m.Tris, [3]int{t[0] + base, t[1] + base, t[2] + base})
	}
}

// Translate moves all vertices by v.
func (m *Mesh) Translate(v r3.Vec) *Mesh {
	for i := range m.Positions {
		m.Positions[i] = r3.Add(m.Positions[i], v)
	}
	return m
}

// Rotate applies a rotation about the origin to vertices and normals.
func (m *Mesh) Rotate(rot r3.Rotation) *Mesh {
	for i := range m.Positions {
		m.Positions[i] = rot.Rotate(m.Positions[i])
	}
	for i := range m.Normals {
		m.Normals[i] = rot.Rotate(m.Normals[i])
	}
	return m
}

// Bounds returns the axis-aligned min/max corners. Zero meshes return two
// zero vectors.
func (m *Mesh) Bounds() (min, max r3.Vec) {
	if len(m.Positions) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// Part is one named mesh with its render attributes.
type Part struct {
	Name     string
	Material string // Material preset key
	Opacity  float64
	Mesh     *Mesh
}

// Group is an ordered collection of parts forming one component.
type Group struct {
	Parts []Part
}

// Add appends a part.
func (g *Group) Add(name, material string, opacity float64, m *Mesh) {
	g.Parts = append(g.Parts, Part{Name: name, Material: material, Opacity: opacity, Mesh: m})
}

// Translate moves every part.
func (g *Group) Translate(v r3.Vec) *Group {
	for _, p := range g.Parts {
		p.Mesh.Translate(v)
	}
	return g
}

// Rotate rotates every part about the origin.
func (g *Group) Rotate(rot r3.Rotation) *Group {
	for _, p := range g.Parts {
		p.Mesh.Rotate(rot)
	}
	return g
}

// Empty reports whether the group contains no geometry.
func (g *Group) Empty() bool {
	for _, p := range g.Parts {
		if p.Mesh != nil && len(p.Mesh.Tris) > 0 {
			return false
		}
	}
	return true
}
