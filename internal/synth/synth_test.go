package synth

import (
	"image"
	"math"
	"testing"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/vessel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/spatial/r3"
)

func horizontalVessel() *vessel.State {
	return vessel.NewState()
}

func verticalVessel() *vessel.State {
	vs := vessel.NewState()
	vs.Orientation = vessel.Vertical
	return vs
}

func TestShellHorizontalExtent(t *testing.T) {
	vs := horizontalVessel()
	g := Shell(vs, false)
	require.Len(t, g.Parts, 1)

	min, max := g.Parts[0].Mesh.Bounds()
	// Long axis spans the heads beyond the tangent lines.
	assert.InDelta(t, -vs.HeadDepth(), min.X, 1e-6)
	assert.InDelta(t, vs.Length+vs.HeadDepth(), max.X, 1e-6)
	assert.InDelta(t, -vs.Radius(), min.Y, vs.Radius()*0.01)
	assert.InDelta(t, vs.Radius(), max.Y, vs.Radius()*0.01)
}

func TestShellVerticalExtent(t *testing.T) {
	vs := verticalVessel()
	g := Shell(vs, false)

	min, max := g.Parts[0].Mesh.Bounds()
	assert.InDelta(t, -vs.HeadDepth(), min.Y, 1e-6)
	assert.InDelta(t, vs.Length+vs.HeadDepth(), max.Y, 1e-6)
}

func TestShellSelectedUsesHighlight(t *testing.T) {
	g := Shell(horizontalVessel(), true)
	assert.Equal(t, "highlight", g.Parts[0].Material)
}

func TestNozzleTopOfHorizontalShell(t *testing.T) {
	vs := horizontalVessel()
	cfg := vessel.NozzleConfig{Name: "N1", Position: 3000, Angle: 90, Length: 200, Bore: 102.3}
	g := Nozzle(vs, cfg, false)
	require.Len(t, g.Parts, 2)

	// At 90 degrees the nozzle grows along +Y from the shell top.
	min, max := g.Parts[0].Mesh.Bounds()
	assert.InDelta(t, vs.Radius(), min.Y, 1.0)
	assert.InDelta(t, vs.Radius()+200, max.Y, 1.0)
	// Centered on the axial position.
	assert.InDelta(t, 3000, (min.X+max.X)/2, 1.0)
}

func TestNozzlePlacementMatchesAngleConvention(t *testing.T) {
	vs := horizontalVessel()
	tests := []struct {
		name  string
		angle float64
		check func(t *testing.T, center r3.Vec)
	}{
		{"0 is +Z", 0, func(t *testing.T, c r3.Vec) { assert.Greater(t, c.Z, vs.Radius()/2) }},
		{"90 is top", 90, func(t *testing.T, c r3.Vec) { assert.Greater(t, c.Y, vs.Radius()/2) }},
		{"180 is -Z", 180, func(t *testing.T, c r3.Vec) { assert.Less(t, c.Z, -vs.Radius()/2) }},
		{"270 is bottom", 270, func(t *testing.T, c r3.Vec) { assert.Less(t, c.Y, -vs.Radius()/2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := vessel.NozzleConfig{Position: 3000, Angle: tt.angle, Length: 150, Bore: 102.3}
			g := Nozzle(vs, cfg, false)
			min, max := g.Parts[0].Mesh.Bounds()
			center := r3.Scale(0.5, r3.Add(min, max))
			tt.check(t, center)
		})
	}
}

func TestNozzleVerticalVesselPlanAngles(t *testing.T) {
	vs := verticalVessel()
	// Plan convention: 0 = +X.
	g := Nozzle(vs, vessel.NozzleConfig{Position: 2000, Angle: 0, Length: 150, Bore: 102.3}, false)
	min, max := g.Parts[0].Mesh.Bounds()
	center := r3.Scale(0.5, r3.Add(min, max))
	assert.Greater(t, center.X, vs.Radius()/2)
	assert.InDelta(t, 2000, center.Y, 1.0)
}

func TestNozzleFixedDirections(t *testing.T) {
	vs := horizontalVessel()
	// A "down" nozzle ignores its angle and exits the shell bottom.
	cfg := vessel.NozzleConfig{Position: 1000, Angle: 90, Length: 150, Bore: 102.3, Direction: vessel.DirDown}
	g := Nozzle(vs, cfg, false)
	min, _ := g.Parts[0].Mesh.Bounds()
	assert.Less(t, min.Y, -vs.Radius()-100)
}

func TestRepeatedSynthesisIsIdentical(t *testing.T) {
	vs := horizontalVessel()

	nozzle := vessel.NozzleConfig{Name: "N1", Position: 2200, Angle: 135, Length: 180, Bore: 77.9}
	lug := vessel.LugConfig{Name: "L1", Position: 4100, Angle: 215, Style: vessel.LugTrunnion, SWL: "10T"}

	assertSameGeometry := func(t *testing.T, a, b *mesh.Group) {
		t.Helper()
		require.Equal(t, len(a.Parts), len(b.Parts))
		for i := range a.Parts {
			assert.Equal(t, a.Parts[i].Name, b.Parts[i].Name)
			assert.Equal(t, a.Parts[i].Mesh.Positions, b.Parts[i].Mesh.Positions)
			assert.Equal(t, a.Parts[i].Mesh.Normals, b.Parts[i].Mesh.Normals)
			assert.Equal(t, a.Parts[i].Mesh.Tris, b.Parts[i].Mesh.Tris)
		}
	}

	// Building twice from the same config and vessel places every vertex
	// identically.
	assertSameGeometry(t, Nozzle(vs, nozzle, false), Nozzle(vs, nozzle, false))
	assertSameGeometry(t, Lug(vs, lug, false), Lug(vs, lug, false))
	assertSameGeometry(t, Shell(vs, false), Shell(vs, false))
	assertSameGeometry(t,
		Saddle(vs, vessel.SaddleConfig{Position: 1500}, false),
		Saddle(vs, vessel.SaddleConfig{Position: 1500}, false))
}

func TestSaddleEmptyForVerticalVessel(t *testing.T) {
	vs := verticalVessel()
	vs.Saddles = []vessel.SaddleConfig{{Position: 1000}, {Position: 5000}}

	assert.True(t, Saddle(vs, vs.Saddles[0], false).Empty())
	assert.Empty(t, Saddles(vs, -1))
}

func TestSaddleBelowShell(t *testing.T) {
	vs := horizontalVessel()
	g := Saddle(vs, vessel.SaddleConfig{Position: 1200}, false)
	require.Len(t, g.Parts, 1)

	min, max := g.Parts[0].Mesh.Bounds()
	assert.Less(t, max.Y, 0.0)
	assert.Less(t, min.Y, -vs.Radius())
	assert.InDelta(t, 1200, (min.X+max.X)/2, 1e-6)
	assert.Equal(t, "painted-gray", g.Parts[0].Material)
}

func TestSaddlesSelection(t *testing.T) {
	vs := horizontalVessel()
	vs.Saddles = []vessel.SaddleConfig{{Position: 1000}, {Position: 5000}}

	groups := Saddles(vs, 1)
	require.Len(t, groups, 2)
	assert.NotEqual(t, "highlight", groups[0].Parts[0].Material)
	assert.Equal(t, "highlight", groups[1].Parts[0].Material)
}

func TestPadEyeLugParts(t *testing.T) {
	vs := horizontalVessel()
	cfg := vessel.LugConfig{Name: "L1", Position: 1500, Angle: 90, Style: vessel.LugPadEye, SWL: "5T"}
	g := Lug(vs, cfg, false)

	require.Len(t, g.Parts, 2)
	assert.Equal(t, "base-plate", g.Parts[0].Name)
	assert.Equal(t, "eye-plate", g.Parts[1].Name)

	// The lug sits on top of the shell and rises above it.
	min, max := g.Parts[1].Mesh.Bounds()
	assert.Greater(t, min.Y, vs.Radius()-1)
	assert.Greater(t, max.Y, vs.Radius()+200)
}

func TestTrunnionLugParts(t *testing.T) {
	vs := horizontalVessel()
	cfg := vessel.LugConfig{Name: "L1", Position: 1500, Angle: 90, Style: vessel.LugTrunnion, SWL: "10T"}
	g := Lug(vs, cfg, false)

	require.Len(t, g.Parts, 4)
	names := make([]string, len(g.Parts))
	for i, p := range g.Parts {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"pad", "stub", "cap", "pin-sleeve"}, names)
}

func TestLugUnknownClassFallsBack(t *testing.T) {
	vs := horizontalVessel()
	cfg := vessel.LugConfig{Name: "L1", Position: 1500, Angle: 90, Style: vessel.LugPadEye, SWL: "999T"}
	g := Lug(vs, cfg, false)
	assert.False(t, g.Empty())
}

func TestDecalUVCenterAndEdges(t *testing.T) {
	vs := horizontalVessel()
	cfg := vessel.TextureConfig{ID: 1, Position: 3000, Angle: 90, ScaleX: 1, ScaleY: 1, Aspect: 1}
	d := TextureDecal(vs, cfg, false)

	u, v, ok := d.UVAt(3000, 90)
	require.True(t, ok)
	assert.InDelta(t, 0.5, u, 1e-9)
	assert.InDelta(t, 0.5, v, 1e-9)

	// Just past the axial edge.
	_, _, ok = d.UVAt(3000+d.Width/2+1, 90)
	assert.False(t, ok)

	// Angular edge at the arc-length equivalent of half the height.
	halfArcDeg := (d.Height / 2 / vs.Radius()) * 180 / math.Pi
	_, _, ok = d.UVAt(3000, 90+halfArcDeg*1.01)
	assert.False(t, ok)
	_, _, ok = d.UVAt(3000, 90+halfArcDeg*0.99)
	assert.True(t, ok)
}

func TestDecalUVWrapsAroundZero(t *testing.T) {
	vs := horizontalVessel()
	cfg := vessel.TextureConfig{ID: 1, Position: 3000, Angle: 0, ScaleX: 1, ScaleY: 1, Aspect: 1}
	d := TextureDecal(vs, cfg, false)

	// A point at 359 degrees is one degree away from a decal centered at 0.
	_, v, ok := d.UVAt(3000, 359)
	require.True(t, ok)
	assert.Less(t, v, 0.5)
}

func TestDecalUVRotationAndFlips(t *testing.T) {
	vs := horizontalVessel()
	base := vessel.TextureConfig{ID: 1, Position: 3000, Angle: 90, ScaleX: 1, ScaleY: 1, Aspect: 1}

	// Sample a point right of center; u > 0.5 in the unrotated decal.
	probe := 3000 + 100.0

	d := TextureDecal(vs, base, false)
	u0, v0, ok := d.UVAt(probe, 90)
	require.True(t, ok)
	assert.Greater(t, u0, 0.5)
	assert.InDelta(t, 0.5, v0, 1e-9)

	rot := base
	rot.Rotation = 1
	dr := TextureDecal(vs, rot, false)
	u1, v1, ok := dr.UVAt(probe, 90)
	require.True(t, ok)
	// One quarter turn: (u,v) -> (v, 1-u).
	assert.InDelta(t, v0, u1, 1e-9)
	assert.InDelta(t, 1-u0, v1, 1e-9)

	flipped := base
	flipped.FlipH = true
	df := TextureDecal(vs, flipped, false)
	u2, _, ok := df.UVAt(probe, 90)
	require.True(t, ok)
	assert.InDelta(t, 1-u0, u2, 1e-9)
}

func TestDecalProxyInvisibleButPickable(t *testing.T) {
	vs := horizontalVessel()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	cfg := vessel.TextureConfig{ID: 7, Position: 3000, Angle: 90, ScaleX: 1, ScaleY: 1, Aspect: 1, Image: img}
	d := TextureDecal(vs, cfg, false)

	g := DecalProxy(vs, d)
	require.Len(t, g.Parts, 1)
	assert.Equal(t, 0.0, g.Parts[0].Opacity)
	assert.NotEmpty(t, g.Parts[0].Mesh.Tris)

	// The proxy hugs the shell just outside its radius.
	min, max := g.Parts[0].Mesh.Bounds()
	assert.Greater(t, max.Y, vs.Radius())
	assert.InDelta(t, 3000, (min.X+max.X)/2, 1.0)
}

func TestTextureDecalsSelection(t *testing.T) {
	vs := horizontalVessel()
	vs.Textures = []vessel.TextureConfig{
		{ID: 1, Position: 1000, Angle: 0, ScaleX: 1, ScaleY: 1, Aspect: 1},
		{ID: 2, Position: 2000, Angle: 0, ScaleX: 1, ScaleY: 1, Aspect: 1},
	}
	decals := TextureDecals(vs, 1)
	require.Len(t, decals, 2)
	assert.False(t, decals[0].Selected)
	assert.True(t, decals[1].Selected)
	assert.Equal(t, 2, decals[1].TextureID)
}
