package synth

import (
	"math"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/sizes"
	"vessel-studio/internal/vessel"
	"vessel-studio/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// Lug builds one lifting lug. The two styles use disjoint builders but
// share the nozzle placement routine, so a lug and a nozzle at the same
// position and angle land on the same shell point.
func Lug(vs *vessel.State, cfg vessel.LugConfig, selected bool) *mesh.Group {
	size, ok := sizes.GetLug(cfg.SWL)
	if !ok {
		size = sizes.DefaultLug()
	}
	applyLugOverrides(&size, cfg)

	var g *mesh.Group
	switch cfg.Style {
	case vessel.LugTrunnion:
		g = trunnionLug(vs, size, selected)
	default:
		g = padEyeLug(vs, size, selected)
	}
	return SurfacePlacement(vs, cfg.Position, cfg.Angle, "").Apply(g)
}

func applyLugOverrides(size *sizes.LugSize, cfg vessel.LugConfig) {
	if cfg.PlateThickness > 0 {
		size.PlateThickness = cfg.PlateThickness
	}
	if cfg.PlateHeight > 0 {
		size.PlateHeight = cfg.PlateHeight
	}
	if cfg.PipeOD > 0 {
		size.PipeOD = cfg.PipeOD
	}
	if cfg.PipeLength > 0 {
		size.PipeLength = cfg.PipeLength
	}
}

// padEyeLug: rectangular base plate flush to the shell topped by an
// extruded tapered plate with a bored eye. Local frame: plate rises along
// +Y, plate faces normal to local Z (the circumferential direction after
// placement), long edge along local X (the vessel long axis).
func padEyeLug(vs *vessel.State, size sizes.LugSize, selected bool) *mesh.Group {
	baseThk := size.PlateThickness * 1.25
	base := mesh.Box(size.BaseWidth, baseThk, size.BaseWidth*0.6)

	plate := mesh.ExtrudeRing(
		padEyeOutline(size, baseThk),
		geometry.Point2D{X: 0, Y: size.PlateHeight},
		size.HoleDiameter/2,
		size.PlateThickness,
		mesh.DefaultSegments,
	)
	mat := materialFor(vs.Visual.MaterialKey, selected)
	g := &mesh.Group{}
	g.Add("base-plate", mat, 1.0, base)
	g.Add("eye-plate", mat, 1.0, plate)
	return g
}

// padEyeOutline traces the tapered plate: a wide base on top of the base
// plate narrowing to a semicircular crown around the eye. Star-shaped about
// the eye center, counter-clockwise.
func padEyeOutline(size sizes.LugSize, baseY float64) []geometry.Point2D {
	hw := size.BaseWidth / 2
	eyeY := size.PlateHeight
	r := size.EyeRadius

	// Crown arc from -20 degrees around the top to 200 degrees.
	const flare = 20.0
	var pts []geometry.Point2D
	pts = append(pts, geometry.Point2D{X: hw, Y: baseY})
	start := -flare
	end := 180 + flare
	steps := 24
	for i := 0; i <= steps; i++ {
		a := geometry.Radians(start + (end-start)*float64(i)/float64(steps))
		pts = append(pts, geometry.Point2D{X: r * math.Cos(a), Y: eyeY + r*math.Sin(a)})
	}
	pts = append(pts, geometry.Point2D{X: -hw, Y: baseY})
	return pts
}

// trunnionLug: base pad disc, tapered cylindrical stub, cap disc, and a
// horizontal cross-pin sleeve through the stub near its top.
func trunnionLug(vs *vessel.State, size sizes.LugSize, selected bool) *mesh.Group {
	padThk := size.PlateThickness
	capThk := size.PlateThickness * 0.8
	stubLen := size.PipeLength

	pad := mesh.Cylinder(size.PadOD/2, padThk, mesh.DefaultSegments, true)
	stub := mesh.Cone(size.PipeOD/2, size.PipeOD*0.425, stubLen, mesh.DefaultSegments).
		Translate(r3.Vec{Y: padThk})
	capDisc := mesh.Cylinder(size.PipeOD*0.55, capThk, mesh.DefaultSegments, true).
		Translate(r3.Vec{Y: padThk + stubLen})

	// Cross-pin sleeve through the stub at 85% of its height, along the
	// vessel long axis (local X).
	sleeveLen := size.PipeOD * 1.8
	sleeve := mesh.Cylinder(size.PinOD/2, sleeveLen, mesh.DefaultSegments, true).
		Rotate(r3.NewRotation(-math.Pi/2, r3.Vec{Z: 1})).
		Translate(r3.Vec{X: -sleeveLen / 2, Y: padThk + stubLen*0.85})

	mat := materialFor(vs.Visual.MaterialKey, selected)
	g := &mesh.Group{}
	g.Add("pad", mat, 1.0, pad)
	g.Add("stub", mat, 1.0, stub)
	g.Add("cap", mat, 1.0, capDisc)
	g.Add("pin-sleeve", mat, 1.0, sleeve)
	return g
}
