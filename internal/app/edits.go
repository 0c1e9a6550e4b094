package app

import (
	"image"

	"vessel-studio/internal/extract"
	"vessel-studio/internal/scene"
	"vessel-studio/internal/sizes"
	"vessel-studio/internal/vessel"
	"vessel-studio/pkg/geometry"
)

// SetShell updates the shell parameters, ignoring invalid values so the
// synthesis layer never sees a non-positive dimension. Component positions
// are re-clamped when the length shrinks.
func (s *State) SetShell(diameter, length, headRatio float64, orientation vessel.Orientation) {
	s.vesselEdit(func(vs *vessel.State) {
		if diameter > 0 {
			vs.Diameter = diameter
		}
		if length > 0 {
			vs.Length = length
		}
		if vessel.ValidHeadRatio(headRatio) {
			vs.HeadRatio = headRatio
		}
		if orientation == vessel.Horizontal || orientation == vessel.Vertical {
			vs.Orientation = orientation
		}
		clampPositions(vs)
	})
}

func clampPositions(vs *vessel.State) {
	for i := range vs.Nozzles {
		vs.Nozzles[i].Position = geometry.Clamp(vs.Nozzles[i].Position, 0, vs.Length)
	}
	for i := range vs.Saddles {
		vs.Saddles[i].Position = geometry.Clamp(vs.Saddles[i].Position, 0, vs.Length)
	}
	for i := range vs.Lugs {
		vs.Lugs[i].Position = geometry.Clamp(vs.Lugs[i].Position, 0, vs.Length)
	}
	for i := range vs.Textures {
		vs.Textures[i].Position = geometry.Clamp(vs.Textures[i].Position, 0, vs.Length)
	}
}

// AddNozzleFromPipe appends a nozzle derived from the nearest standard pipe
// size for the given bore.
func (s *State) AddNozzleFromPipe(name string, bore float64) {
	pipe := sizes.NearestPipe(bore)
	s.vesselEdit(func(vs *vessel.State) {
		vs.Nozzles = append(vs.Nozzles, vessel.NozzleConfig{
			Name:     name,
			Position: vs.Length / 2,
			Length:   150,
			Angle:    90,
			Bore:     pipe.ID,
		})
	})
}

// UpdateNozzle replaces the nozzle config at index.
func (s *State) UpdateNozzle(index int, cfg vessel.NozzleConfig) {
	s.vesselEdit(func(vs *vessel.State) {
		if index >= 0 && index < len(vs.Nozzles) {
			cfg.Position = geometry.Clamp(cfg.Position, 0, vs.Length)
			cfg.Angle = geometry.WrapDegrees(cfg.Angle)
			vs.Nozzles[index] = cfg
		}
	})
}

// RemoveNozzle deletes the nozzle at index.
func (s *State) RemoveNozzle(index int) {
	s.Deselect()
	s.vesselEdit(func(vs *vessel.State) {
		if index >= 0 && index < len(vs.Nozzles) {
			vs.Nozzles = append(vs.Nozzles[:index], vs.Nozzles[index+1:]...)
		}
	})
}

// AddSaddle appends a saddle at the given axial position.
func (s *State) AddSaddle(position float64) {
	s.vesselEdit(func(vs *vessel.State) {
		vs.Saddles = append(vs.Saddles, vessel.SaddleConfig{
			Position: geometry.Clamp(position, 0, vs.Length),
		})
	})
}

// RemoveSaddle deletes the saddle at index.
func (s *State) RemoveSaddle(index int) {
	s.Deselect()
	s.vesselEdit(func(vs *vessel.State) {
		if index >= 0 && index < len(vs.Saddles) {
			vs.Saddles = append(vs.Saddles[:index], vs.Saddles[index+1:]...)
		}
	})
}

// AddLug appends a lifting lug.
func (s *State) AddLug(name string, style vessel.LugStyle, swl string) {
	s.vesselEdit(func(vs *vessel.State) {
		vs.Lugs = append(vs.Lugs, vessel.LugConfig{
			Name:     name,
			Position: vs.Length / 2,
			Angle:    90,
			Style:    style,
			SWL:      swl,
		})
	})
}

// UpdateLug replaces the lug config at index.
func (s *State) UpdateLug(index int, cfg vessel.LugConfig) {
	s.vesselEdit(func(vs *vessel.State) {
		if index >= 0 && index < len(vs.Lugs) {
			cfg.Position = geometry.Clamp(cfg.Position, 0, vs.Length)
			cfg.Angle = geometry.WrapDegrees(cfg.Angle)
			vs.Lugs[index] = cfg
		}
	})
}

// RemoveLug deletes the lug at index.
func (s *State) RemoveLug(index int) {
	s.Deselect()
	s.vesselEdit(func(vs *vessel.State) {
		if index >= 0 && index < len(vs.Lugs) {
			vs.Lugs = append(vs.Lugs[:index], vs.Lugs[index+1:]...)
		}
	})
}

// AddTexture registers an imported raster as a shell texture. The id comes
// from the host-owned sequence; the image handle is owned by the state
// until RemoveTexture releases it.
func (s *State) AddTexture(name string, img image.Image) int {
	var id int
	s.vesselEdit(func(vs *vessel.State) {
		id = s.Seq.Next()
		aspect := 1.0
		if img != nil {
			b := img.Bounds()
			if b.Dy() > 0 {
				aspect = float64(b.Dx()) / float64(b.Dy())
			}
		}
		vs.Textures = append(vs.Textures, vessel.TextureConfig{
			ID:       id,
			Name:     name,
			Position: vs.Length / 2,
			Angle:    90,
			ScaleX:   1,
			ScaleY:   1,
			Aspect:   aspect,
			Image:    img,
		})
	})
	return id
}

// UpdateTexture replaces the texture config at index, preserving its id and
// image handle.
func (s *State) UpdateTexture(index int, cfg vessel.TextureConfig) {
	s.vesselEdit(func(vs *vessel.State) {
		if index >= 0 && index < len(vs.Textures) {
			cfg.ID = vs.Textures[index].ID
			cfg.Image = vs.Textures[index].Image
			cfg.Position = geometry.Clamp(cfg.Position, 0, vs.Length)
			cfg.Angle = geometry.WrapDegrees(cfg.Angle)
			vs.Textures[index] = cfg
		}
	})
}

// RemoveTexture deletes the texture at index and releases its image handle
// so the renderer drops the pixel payload.
func (s *State) RemoveTexture(index int) {
	s.Deselect()
	s.vesselEdit(func(vs *vessel.State) {
		if index >= 0 && index < len(vs.Textures) {
			vs.Textures[index].Image = nil
			vs.Textures = append(vs.Textures[:index], vs.Textures[index+1:]...)
		}
	})
}

// MoveComponent is the write-back for drag proposals: it stores the new
// position (and angle, where the component has one) for the component the
// controller reports.
func (s *State) MoveComponent(kind scene.Kind, index int, position, angle float64) {
	s.vesselEdit(func(vs *vessel.State) {
		position = geometry.Clamp(position, 0, vs.Length)
		angle = geometry.WrapDegrees(angle)
		switch kind {
		case scene.KindNozzle:
			if index >= 0 && index < len(vs.Nozzles) {
				vs.Nozzles[index].Position = position
				vs.Nozzles[index].Angle = angle
			}
		case scene.KindSaddle:
			if index >= 0 && index < len(vs.Saddles) {
				vs.Saddles[index].Position = position
			}
		case scene.KindLug:
			if index >= 0 && index < len(vs.Lugs) {
				vs.Lugs[index].Position = position
				vs.Lugs[index].Angle = angle
			}
		case scene.KindTexture:
			if index >= 0 && index < len(vs.Textures) {
				vs.Textures[index].Position = position
				vs.Textures[index].Angle = angle
			}
		}
	})
}

// ApplyExtraction folds a drawing-import result into the vessel exactly
// like a manual edit.
func (s *State) ApplyExtraction(result *extract.Result) {
	if result == nil {
		return
	}
	s.Deselect()
	s.vesselEdit(func(vs *vessel.State) {
		result.ApplyTo(vs)
	})
}

// SetVisual updates the visual settings.
func (s *State) SetVisual(visual vessel.VisualSettings) {
	s.vesselEdit(func(vs *vessel.State) {
		if visual.MaterialKey == "" {
			visual.MaterialKey = vs.Visual.MaterialKey
		}
		if visual.LightingKey == "" {
			visual.LightingKey = vs.Visual.LightingKey
		}
		visual.ShellOpacity = geometry.Clamp(visual.ShellOpacity, 0.05, 1)
		visual.NozzleOpacity = geometry.Clamp(visual.NozzleOpacity, 0.05, 1)
		vs.Visual = visual
	})
}
