// Command meshdump synthesizes a vessel from command line parameters and
// writes the merged geometry as a Wavefront OBJ file, for inspecting the
// builders outside the UI.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/synth"
	"vessel-studio/internal/vessel"
)

func main() {
	diameter := flag.Float64("diameter", 2000, "Shell inner diameter (mm)")
	length := flag.Float64("length", 6000, "Tan-tan length (mm)")
	ratio := flag.Float64("ratio", 2.0, "Ellipsoidal head ratio")
	orientation := flag.String("orientation", "horizontal", "Orientation: horizontal or vertical")
	nozzles := flag.Int("nozzles", 2, "Number of evenly spaced test nozzles")
	saddles := flag.Bool("saddles", true, "Include a saddle pair (horizontal only)")
	lugs := flag.String("lugs", "pad-eye", "Lug style: pad-eye, trunnion, or none")
	out := flag.String("out", "", "Output OBJ path (default stdout)")
	flag.Parse()

	vs := vessel.NewState()
	vs.Diameter = *diameter
	vs.Length = *length
	if vessel.ValidHeadRatio(*ratio) {
		vs.HeadRatio = *ratio
	}
	if *orientation == "vertical" {
		vs.Orientation = vessel.Vertical
	}

	for i := 0; i < *nozzles; i++ {
		vs.Nozzles = append(vs.Nozzles, vessel.NozzleConfig{
			Name:     fmt.Sprintf("N%d", i+1),
			Position: vs.Length * float64(i+1) / float64(*nozzles+1),
			Length:   150,
			Angle:    90,
			Bore:     102.3,
		})
	}
	if *saddles && vs.Orientation == vessel.Horizontal {
		vs.Saddles = append(vs.Saddles,
			vessel.SaddleConfig{Position: vs.Length * 0.2},
			vessel.SaddleConfig{Position: vs.Length * 0.8},
		)
	}
	if *lugs == string(vessel.LugPadEye) || *lugs == string(vessel.LugTrunnion) {
		vs.Lugs = append(vs.Lugs,
			vessel.LugConfig{Name: "L1", Position: vs.Length * 0.25, Angle: 90, Style: vessel.LugStyle(*lugs), SWL: "5T"},
			vessel.LugConfig{Name: "L2", Position: vs.Length * 0.75, Angle: 90, Style: vessel.LugStyle(*lugs), SWL: "5T"},
		)
	}

	if err := vs.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid vessel: %v\n", err)
		os.Exit(1)
	}

	groups := []*mesh.Group{synth.Shell(vs, false)}
	for _, cfg := range vs.Nozzles {
		groups = append(groups, synth.Nozzle(vs, cfg, false))
	}
	for _, g := range synth.Saddles(vs, -1) {
		groups = append(groups, g)
	}
	for _, cfg := range vs.Lugs {
		groups = append(groups, synth.Lug(vs, cfg, false))
	}

	w := bufio.NewWriter(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *out, err)
			os.Exit(1)
		}
		defer f.Close()
		w = bufio.NewWriter(f)
	}
	defer w.Flush()

	verts, tris := writeOBJ(w, groups)
	fmt.Fprintf(os.Stderr, "Wrote %d vertices, %d triangles in %d groups\n", verts, tris, len(groups))
}

// writeOBJ emits all parts as one OBJ stream with per-part object names.
// OBJ indices are 1-based and global across objects.
func writeOBJ(w *bufio.Writer, groups []*mesh.Group) (verts, tris int) {
	offset := 1
	for gi, g := range groups {
		for _, part := range g.Parts {
			if part.Mesh == nil {
				continue
			}
			fmt.Fprintf(w, "o %s_%d\n", part.Name, gi)
			for _, p := range part.Mesh.Positions {
				fmt.Fprintf(w, "v %.3f %.3f %.3f\n", p.X, p.Y, p.Z)
			}
			for _, n := range part.Mesh.Normals {
				fmt.Fprintf(w, "vn %.4f %.4f %.4f\n", n.X, n.Y, n.Z)
			}
			for _, t := range part.Mesh.Tris {
				a, b, c := t[0]+offset, t[1]+offset, t[2]+offset
				fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
			}
			verts += len(part.Mesh.Positions)
			tris += len(part.Mesh.Tris)
			offset += len(part.Mesh.Positions)
		}
	}
	return verts, tris
}
