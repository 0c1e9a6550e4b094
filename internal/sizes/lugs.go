package sizes

// LugSize holds the geometry for one safe-working-load class, covering both
// lug styles. Plate fields drive the pad-eye builder, pipe fields the
// trunnion builder. Millimeters throughout.
type LugSize struct {
	SWL string `json:"swl"` // Class key, e.g. "5T"

	// Pad-eye plate
	BaseWidth      float64 `json:"base_width"`      // Plate width at the shell
	PlateHeight    float64 `json:"plate_height"`    // Shell surface to eye center
	PlateThickness float64 `json:"plate_thickness"` // Plate thickness
	HoleDiameter   float64 `json:"hole_diameter"`   // Shackle pin hole bore
	EyeRadius      float64 `json:"eye_radius"`      // Semicircular eye radius

	// Trunnion
	PipeOD     float64 `json:"pipe_od"`     // Stub outside diameter
	PipeLength float64 `json:"pipe_length"` // Stub length from shell
	PinOD      float64 `json:"pin_od"`      // Cross-pin sleeve outside diameter
	PadOD      float64 `json:"pad_od"`      // Base reinforcing pad diameter
}

var lugTable = []LugSize{
	{SWL: "1T", BaseWidth: 120, PlateHeight: 140, PlateThickness: 12, HoleDiameter: 26, EyeRadius: 40, PipeOD: 60.3, PipeLength: 150, PinOD: 26, PadOD: 120},
	{SWL: "2T", BaseWidth: 150, PlateHeight: 170, PlateThickness: 16, HoleDiameter: 33, EyeRadius: 50, PipeOD: 88.9, PipeLength: 180, PinOD: 33, PadOD: 160},
	{SWL: "5T", BaseWidth: 200, PlateHeight: 220, PlateThickness: 20, HoleDiameter: 42, EyeRadius: 65, PipeOD: 114.3, PipeLength: 220, PinOD: 42, PadOD: 200},
	{SWL: "10T", BaseWidth: 260, PlateHeight: 290, PlateThickness: 28, HoleDiameter: 52, EyeRadius: 85, PipeOD: 168.3, PipeLength: 280, PinOD: 52, PadOD: 280},
	{SWL: "20T", BaseWidth: 340, PlateHeight: 380, PlateThickness: 36, HoleDiameter: 65, EyeRadius: 110, PipeOD: 219.1, PipeLength: 340, PinOD: 65, PadOD: 360},
	{SWL: "50T", BaseWidth: 480, PlateHeight: 520, PlateThickness: 50, HoleDiameter: 90, EyeRadius: 150, PipeOD: 323.9, PipeLength: 450, PinOD: 90, PadOD: 520},
}

// ListLugClasses returns the SWL class keys in rating order.
func ListLugClasses() []string {
	out := make([]string, len(lugTable))
	for i, l := range lugTable {
		out[i] = l.SWL
	}
	return out
}

// GetLug returns the lug size for the given SWL class.
func GetLug(swl string) (LugSize, bool) {
	for _, l := range lugTable {
		if l.SWL == swl {
			return l, true
		}
	}
	return LugSize{}, false
}

// DefaultLug returns the size used when a config names an unknown class.
func DefaultLug() LugSize {
	return lugTable[2] // 5T
}
