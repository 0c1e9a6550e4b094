package synth

import (
	"vessel-studio/internal/mesh"
	"vessel-studio/internal/sizes"
	"vessel-studio/internal/vessel"

	"gonum.org/v1/gonum/spatial/r3"
)

// Nozzle builds one nozzle: a pipe from the shell surface plus a flange
// disc at its outboard end, placed by the shared surface placement.
// Pipe and flange dimensions come from the nearest standard pipe size for
// the nozzle bore unless the config overrides them.
func Nozzle(vs *vessel.State, cfg vessel.NozzleConfig, selected bool) *mesh.Group {
	std := sizes.NearestPipe(cfg.Bore)

	pipeOD := cfg.PipeOD
	if pipeOD <= 0 {
		pipeOD = std.OD
	}
	flangeOD := cfg.FlangeOD
	if flangeOD <= 0 {
		flangeOD = std.FlangeOD
	}
	flangeThk := cfg.FlangeThickness
	if flangeThk <= 0 {
		flangeThk = std.FlangeThickness
	}

	length := cfg.Length
	if length <= 0 {
		length = 150
	}

	// Local frame: pipe runs from the shell surface (y=0) outward along +Y,
	// flange seated at the outboard end.
	pipe := mesh.Cylinder(pipeOD/2, length, mesh.DefaultSegments, false)
	flange := mesh.Cylinder(flangeOD/2, flangeThk, mesh.DefaultSegments, true).
		Translate(r3.Vec{Y: length - flangeThk})

	mat := materialFor(vs.Visual.MaterialKey, selected)
	g := &mesh.Group{}
	g.Add("pipe", mat, vs.Visual.NozzleOpacity, pipe)
	g.Add("flange", mat, vs.Visual.NozzleOpacity, flange)

	return SurfacePlacement(vs, cfg.Position, cfg.Angle, cfg.Direction).Apply(g)
}
