// Package vessel defines the canonical vessel parameter set: shell
// dimensions plus the ordered component lists (nozzles, saddles, lifting
// lugs, textures). The host application owns exactly one State; geometry
// synthesis and the UI treat it as read-only and propose changes through
// callbacks.
package vessel

import (
	"fmt"
	"image"
)

// Orientation is the vessel's installed attitude.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// HeadRatios is the allowed set of ellipsoidal head depth factors
// (head depth = radius / ratio). 2.0 is the common 2:1 ellipsoidal head.
var HeadRatios = []float64{1.8, 2.0, 2.2, 2.5}

// DefaultHeadRatio is used for new vessels and for imports that omit it.
const DefaultHeadRatio = 2.0

// NozzleDirection selects how a nozzle projects from the shell.
type NozzleDirection string

const (
	// DirRadial points outward along the shell normal (the default).
	DirRadial NozzleDirection = "radial"
	// DirHorizontal points along world +Z regardless of angle.
	DirHorizontal NozzleDirection = "horizontal"
	// DirUp and DirDown point along world ±Y regardless of angle.
	DirUp   NozzleDirection = "up"
	DirDown NozzleDirection = "down"
)

// LugStyle selects the lifting lug geometry builder.
type LugStyle string

const (
	LugPadEye   LugStyle = "pad-eye"
	LugTrunnion LugStyle = "trunnion"
)

// NozzleConfig describes one nozzle. Position is millimeters from the left
// tangent line along the vessel's long axis; Angle is degrees around the
// shell (0 = right, 90 = top, 180 = left, 270 = bottom).
type NozzleConfig struct {
	Name      string          `json:"name"`
	Position  float64         `json:"position"`
	Length    float64         `json:"length"` // Projection from shell surface
	Angle     float64         `json:"angle"`
	Bore      float64         `json:"bore"` // Inside diameter
	Direction NozzleDirection `json:"direction,omitempty"`

	// Overrides; zero means "derive from nearest standard pipe size".
	FlangeOD        float64 `json:"flange_od,omitempty"`
	FlangeThickness float64 `json:"flange_thickness,omitempty"`
	PipeOD          float64 `json:"pipe_od,omitempty"`
}

// SaddleConfig describes one support saddle. Saddles only make sense for
// horizontal vessels; synthesis yields nothing for vertical orientation.
type SaddleConfig struct {
	Position float64 `json:"position"`
	Color    string  `json:"color,omitempty"`
}

// LugConfig describes one lifting lug.
type LugConfig struct {
	Name     string   `json:"name"`
	Position float64  `json:"position"`
	Angle    float64  `json:"angle"`
	Style    LugStyle `json:"style"`
	SWL      string   `json:"swl"` // Size class key, see sizes.ListLugClasses

	// Overrides; zero means "derive from the SWL class".
	PlateThickness float64 `json:"plate_thickness,omitempty"`
	PlateHeight    float64 `json:"plate_height,omitempty"`
	PipeOD         float64 `json:"pipe_od,omitempty"`
	PipeLength     float64 `json:"pipe_length,omitempty"`
}

// TextureConfig maps an imported raster onto the shell surface at a given
// position/angle. The pixel payload is owned by the host state and released
// when the texture is removed.
type TextureConfig struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Position float64 `json:"position"`
	Angle    float64 `json:"angle"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
	Rotation int     `json:"rotation"` // Quarter turns, 0-3
	FlipH    bool    `json:"flip_h"`
	FlipV    bool    `json:"flip_v"`
	Aspect   float64 `json:"aspect"` // Source width/height

	Image image.Image `json:"-"`
}

// VisualSettings are rendering choices that do not affect geometry.
type VisualSettings struct {
	MaterialKey   string  `json:"material"`
	LightingKey   string  `json:"lighting"`
	ShellOpacity  float64 `json:"shell_opacity"`
	NozzleOpacity float64 `json:"nozzle_opacity"`
}

// State is the full vessel parameter set.
type State struct {
	ID          int         `json:"id"`
	Diameter    float64     `json:"diameter"` // Inner diameter, mm
	Length      float64     `json:"length"`   // Tan-tan length, mm
	HeadRatio   float64     `json:"head_ratio"`
	Orientation Orientation `json:"orientation"`

	Nozzles  []NozzleConfig  `json:"nozzles"`
	Saddles  []SaddleConfig  `json:"saddles"`
	Lugs     []LugConfig     `json:"lugs"`
	Textures []TextureConfig `json:"textures"`

	Visual VisualSettings `json:"visual"`
}

// NewState returns a vessel with workable defaults.
func NewState() *State {
	return &State{
		Diameter:    2000,
		Length:      6000,
		HeadRatio:   DefaultHeadRatio,
		Orientation: Horizontal,
		Visual: VisualSettings{
			MaterialKey:   "carbon-steel",
			LightingKey:   "workshop",
			ShellOpacity:  1.0,
			NozzleOpacity: 1.0,
		},
	}
}

// Radius returns the shell inner radius.
func (s *State) Radius() float64 {
	return s.Diameter / 2
}

// HeadDepth returns the ellipsoidal head depth.
func (s *State) HeadDepth() float64 {
	return s.Radius() / s.HeadRatio
}

// ValidHeadRatio reports whether r is in the allowed set.
func ValidHeadRatio(r float64) bool {
	for _, v := range HeadRatios {
		if v == r {
			return true
		}
	}
	return false
}

// Validate checks the shell invariants and component ranges. Component
// positions outside [0, Length] are reported, not clamped; entry points are
// expected to clamp before storing.
func (s *State) Validate() error {
	if s.Diameter <= 0 {
		return fmt.Errorf("vessel diameter must be positive, got %g", s.Diameter)
	}
	if s.Length <= 0 {
		return fmt.Errorf("vessel length must be positive, got %g", s.Length)
	}
	if !ValidHeadRatio(s.HeadRatio) {
		return fmt.Errorf("head ratio %g not in allowed set %v", s.HeadRatio, HeadRatios)
	}
	if s.Orientation != Horizontal && s.Orientation != Vertical {
		return fmt.Errorf("unknown orientation %q", s.Orientation)
	}
	for i, n := range s.Nozzles {
		if n.Position < 0 || n.Position > s.Length {
			return fmt.Errorf("nozzle %d position %g outside [0, %g]", i, n.Position, s.Length)
		}
		if n.Bore <= 0 {
			return fmt.Errorf("nozzle %d bore must be positive", i)
		}
	}
	for i, sd := range s.Saddles {
		if sd.Position < 0 || sd.Position > s.Length {
			return fmt.Errorf("saddle %d position %g outside [0, %g]", i, sd.Position, s.Length)
		}
	}
	for i, l := range s.Lugs {
		if l.Position < 0 || l.Position > s.Length {
			return fmt.Errorf("lug %d position %g outside [0, %g]", i, l.Position, s.Length)
		}
	}
	for i, t := range s.Textures {
		if t.Position < 0 || t.Position > s.Length {
			return fmt.Errorf("texture %d position %g outside [0, %g]", i, t.Position, s.Length)
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Texture images are shared, not
// copied; pixel payloads are immutable once imported.
func (s *State) Clone() *State {
	out := *s
	out.Nozzles = append([]NozzleConfig(nil), s.Nozzles...)
	out.Saddles = append([]SaddleConfig(nil), s.Saddles...)
	out.Lugs = append([]LugConfig(nil), s.Lugs...)
	out.Textures = append([]TextureConfig(nil), s.Textures...)
	return &out
}
