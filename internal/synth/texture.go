package synth

import (
	"image"
	"math"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/vessel"
	"vessel-studio/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// decalBaseSize is the on-shell extent, in mm, of a decal at scale 1.0.
// Width additionally stretches by the source aspect ratio so an imported
// image keeps its proportions by default.
const decalBaseSize = 500.0

// Decal is the planar projection of an imported raster onto the shell
// surface. It is not a mesh: the renderer samples it while shading shell
// fragments via UVAt.
type Decal struct {
	TextureID int
	Image     image.Image

	Position float64 // Axial center, mm from the left tangent
	Angle    float64 // Circumferential center, degrees
	Width    float64 // Axial extent, mm
	Height   float64 // Arc extent, mm
	Rotation int     // Quarter turns
	FlipH    bool
	FlipV    bool

	ShellRadius float64
	Selected    bool
}

// TextureDecal builds the decal description for one texture config.
// Scale/rotation/flip are baked into the description; the raster payload is
// referenced, never copied.
func TextureDecal(vs *vessel.State, cfg vessel.TextureConfig, selected bool) Decal {
	aspect := cfg.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	sx := cfg.ScaleX
	if sx <= 0 {
		sx = 1
	}
	sy := cfg.ScaleY
	if sy <= 0 {
		sy = 1
	}
	return Decal{
		TextureID:   cfg.ID,
		Image:       cfg.Image,
		Position:    cfg.Position,
		Angle:       geometry.WrapDegrees(cfg.Angle),
		Width:       decalBaseSize * sx * aspect,
		Height:      decalBaseSize * sy,
		Rotation:    ((cfg.Rotation % 4) + 4) % 4,
		FlipH:       cfg.FlipH,
		FlipV:       cfg.FlipV,
		ShellRadius: vs.Radius(),
		Selected:    selected,
	}
}

// UVAt maps a shell surface point (axial mm, circumferential degrees) to
// decal UV coordinates in [0,1]. ok is false outside the decal footprint.
// The arc distance uses the shell radius, so a decal keeps its physical
// size when the angle changes.
func (d Decal) UVAt(axial, angleDeg float64) (u, v float64, ok bool) {
	du := axial - d.Position

	// Signed shortest angular offset, then arc length.
	diff := geometry.WrapDegrees(angleDeg - d.Angle)
	if diff > 180 {
		diff -= 360
	}
	dv := geometry.Radians(diff) * d.ShellRadius

	if d.Width <= 0 || d.Height <= 0 {
		return 0, 0, false
	}
	u = du/d.Width + 0.5
	v = dv/d.Height + 0.5
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}

	// Quarter-turn rotation, then flips, all in UV space.
	for r := 0; r < d.Rotation; r++ {
		u, v = v, 1-u
	}
	if d.FlipH {
		u = 1 - u
	}
	if d.FlipV {
		v = 1 - v
	}
	return u, v, true
}

// DecalProxy builds an invisible curved patch hugging the shell over the
// decal footprint. The renderer never draws it; it exists so textures are
// hit-testable and draggable like mesh components.
func DecalProxy(vs *vessel.State, d Decal) *mesh.Group {
	const cols, rows = 8, 3
	r := vs.Radius() + 1 // Just proud of the shell so picking hits it first

	halfArc := geometry.Degrees(d.Height / 2 / vs.Radius())
	m := &mesh.Mesh{}
	for i := 0; i <= rows; i++ {
		ang := geometry.Radians(d.Angle - halfArc + 2*halfArc*float64(i)/rows)
		for j := 0; j <= cols; j++ {
			axial := d.Position - d.Width/2 + d.Width*float64(j)/cols
			m.Positions = append(m.Positions, shellPoint(vs, axial, ang, r))
			m.Normals = append(m.Normals, shellNormal(vs, ang))
		}
	}
	stride := cols + 1
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a := i*stride + j
			b := a + 1
			c := a + stride
			e := c + 1
			m.Tris = append(m.Tris, [3]int{a, b, c}, [3]int{b, e, c})
		}
	}
	g := &mesh.Group{}
	g.Add("decal-proxy", materialFor(vs.Visual.MaterialKey, d.Selected), 0, m)
	return g
}

func shellPoint(vs *vessel.State, axial, angRad, radius float64) r3.Vec {
	if vs.Orientation == vessel.Vertical {
		return r3.Vec{X: radius * math.Cos(angRad), Y: axial, Z: -radius * math.Sin(angRad)}
	}
	return r3.Vec{X: axial, Y: radius * math.Sin(angRad), Z: radius * math.Cos(angRad)}
}

func shellNormal(vs *vessel.State, angRad float64) r3.Vec {
	if vs.Orientation == vessel.Vertical {
		return r3.Vec{X: math.Cos(angRad), Z: -math.Sin(angRad)}
	}
	return r3.Vec{Y: math.Sin(angRad), Z: math.Cos(angRad)}
}

// TextureDecals builds decals for all textures on the vessel.
func TextureDecals(vs *vessel.State, selectedIndex int) []Decal {
	out := make([]Decal, 0, len(vs.Textures))
	for i, cfg := range vs.Textures {
		out = append(out, TextureDecal(vs, cfg, i == selectedIndex))
	}
	return out
}
