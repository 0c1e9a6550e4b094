package render

import (
	"image"
	"math"

	"vessel-studio/internal/mesh"
	"vessel-studio/internal/scene"
	"vessel-studio/internal/sizes"
	"vessel-studio/internal/synth"
	"vessel-studio/internal/vessel"
	"vessel-studio/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// Params selects the presets and surface context for one frame.
type Params struct {
	Lighting    sizes.LightingPreset
	Orientation vessel.Orientation
	Decals      []synth.Decal
}

// Render draws the scene through the camera into a w by h image. Opaque
// parts write depth; translucent parts blend over what is already there
// without writing depth, which is close enough for a modeling viewport.
func Render(sc *scene.Scene, cam *scene.Camera, params Params, w, h int) *image.RGBA {
	fb := NewFrameBuffer(w, h)
	light := newLightState(params.Lighting)

	// Opaque pass first, then translucent, so a see-through shell still
	// shows the nozzles behind it.
	for _, translucent := range []bool{false, true} {
		for _, node := range sc.Nodes() {
			if node.Group == nil {
				continue
			}
			for _, part := range node.Group.Parts {
				if part.Mesh == nil || part.Opacity <= 0.001 {
					continue
				}
				if (part.Opacity < 0.999) != translucent {
					continue
				}
				mat := sizes.GetMaterial(part.Material)
				shellPart := node.Key.Kind == scene.KindShell
				drawMesh(fb, cam, part.Mesh, mat, part.Opacity, light, shellPart, params)
			}
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, fb.Color)
	return img
}

type lightState struct {
	dir       r3.Vec
	ambient   float64
	intensity float64
	fill      float64
}

func newLightState(preset sizes.LightingPreset) lightState {
	d := r3.Vec{X: preset.DirX, Y: preset.DirY, Z: preset.DirZ}
	if r3.Norm(d) < 1e-9 {
		d = r3.Vec{Y: 1}
	}
	return lightState{
		dir:       r3.Unit(d),
		ambient:   preset.Ambient,
		intensity: preset.Intensity,
		fill:      preset.FillWeight,
	}
}

// shade is flat per-face lighting with a Blinn-Phong highlight scaled by
// the material's specular weight.
func (l lightState) shade(normal, view r3.Vec, mat sizes.MaterialPreset) float64 {
	ndl := r3.Dot(normal, l.dir)
	diffuse := math.Max(0, ndl)*l.intensity + math.Max(0, -ndl)*l.fill

	half := r3.Unit(r3.Sub(l.dir, view))
	ndh := math.Max(0, r3.Dot(normal, half))
	power := 8 + (1-mat.Roughness)*56
	spec := math.Pow(ndh, power) * mat.Specular

	return l.ambient + diffuse + spec
}

func drawMesh(fb *FrameBuffer, cam *scene.Camera, m *mesh.Mesh, mat sizes.MaterialPreset, opacity float64, light lightState, shellPart bool, params Params) {
	w, h := float64(fb.Width), float64(fb.Height)

	for _, tri := range m.Tris {
		a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]

		ax, ay, ad, ok0 := cam.Project(a)
		bx, by, bd, ok1 := cam.Project(b)
		cx, cy, cd, ok2 := cam.Project(c)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		// NDC to screen, +y down.
		x0, y0 := (ax+1)/2*w, (1-ay)/2*h
		x1, y1 := (bx+1)/2*w, (1-by)/2*h
		x2, y2 := (cx+1)/2*w, (1-cy)/2*h

		normal := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if r3.Norm(normal) < 1e-12 {
			continue
		}
		normal = r3.Unit(normal)
		centroid := r3.Scale(1.0/3.0, r3.Add(a, r3.Add(b, c)))
		view := r3.Unit(r3.Sub(centroid, cam.Position))
		// Double-sided: flip the normal toward the camera.
		if r3.Dot(normal, view) > 0 {
			normal = r3.Scale(-1, normal)
		}
		shade := light.shade(normal, view, mat)

		fillTriangle(fb, triVert{x0, y0, ad, a}, triVert{x1, y1, bd, b}, triVert{x2, y2, cd, c},
			mat, opacity, shade, shellPart, params)
	}
}

type triVert struct {
	x, y  float64
	depth float64
	world r3.Vec
}

func fillTriangle(fb *FrameBuffer, v0, v1, v2 triVert, mat sizes.MaterialPreset, opacity, shade float64, shellPart bool, params Params) {
	minX := int(math.Floor(math.Min(math.Min(v0.x, v1.x), v2.x)))
	maxX := int(math.Ceil(math.Max(math.Max(v0.x, v1.x), v2.x)))
	minY := int(math.Floor(math.Min(math.Min(v0.y, v1.y), v2.y)))
	maxY := int(math.Ceil(math.Max(math.Max(v0.y, v1.y), v2.y)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (v1.y-v2.y)*(v0.x-v2.x) + (v2.x-v1.x)*(v0.y-v2.y)
	if det > -1e-9 && det < 1e-9 {
		return
	}
	invDet := 1 / det
	dy12, dx21 := v1.y-v2.y, v2.x-v1.x
	dy20, dx02 := v2.y-v0.y, v0.x-v2.x

	sampleDecals := shellPart && len(params.Decals) > 0
	writeDepth := opacity >= 0.999

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - v2.y
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - v2.x
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*v0.depth + w1*v1.depth + w2*v2.depth
			pi := rowOff + sx
			if depth >= fb.ZBuf[pi] {
				continue
			}

			r, g, b := mat.R, mat.G, mat.B
			if sampleDecals {
				world := r3.Add(r3.Scale(w0, v0.world), r3.Add(r3.Scale(w1, v1.world), r3.Scale(w2, v2.world)))
				if dr, dg, db, hit := sampleDecal(world, params); hit {
					r, g, b = dr, dg, db
				}
			}

			sr := clamp8(float64(r) * shade)
			sg := clamp8(float64(g) * shade)
			sb := clamp8(float64(b) * shade)

			ci := pi * 4
			if opacity >= 0.999 {
				fb.Color[ci] = sr
				fb.Color[ci+1] = sg
				fb.Color[ci+2] = sb
			} else {
				inv := 1 - opacity
				fb.Color[ci] = uint8(float64(sr)*opacity + float64(fb.Color[ci])*inv)
				fb.Color[ci+1] = uint8(float64(sg)*opacity + float64(fb.Color[ci+1])*inv)
				fb.Color[ci+2] = uint8(float64(sb)*opacity + float64(fb.Color[ci+2])*inv)
			}
			if writeDepth {
				fb.ZBuf[pi] = depth
			}
		}
	}
}

// sampleDecal maps a shell-surface world point to the first decal covering
// it. Later decals in the list sit "on top": the last hit wins, matching
// the texture list order in the vessel state.
func sampleDecal(world r3.Vec, params Params) (r, g, b uint8, ok bool) {
	var axial, angle float64
	if params.Orientation == vessel.Vertical {
		axial = world.Y
		angle = geometry.Degrees(math.Atan2(-world.Z, world.X))
	} else {
		axial = world.X
		angle = geometry.Degrees(math.Atan2(world.Y, world.Z))
	}
	angle = geometry.WrapDegrees(angle)

	for i := len(params.Decals) - 1; i >= 0; i-- {
		d := params.Decals[i]
		u, v, hit := d.UVAt(axial, angle)
		if !hit || d.Image == nil {
			continue
		}
		bounds := d.Image.Bounds()
		px := bounds.Min.X + int(u*float64(bounds.Dx()-1))
		py := bounds.Min.Y + int((1-v)*float64(bounds.Dy()-1))
		cr, cg, cb, ca := d.Image.At(px, py).RGBA()
		if ca < 0x1000 {
			continue
		}
		return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), true
	}
	return 0, 0, 0, false
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
