package sizes

// MaterialPreset describes a renderable surface appearance.
type MaterialPreset struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	R, G, B   uint8   `json:"-"`
	Specular  float64 `json:"specular"`  // 0..1 specular weight
	Metallic  bool    `json:"metallic"`  // Tighter highlight
	Roughness float64 `json:"roughness"` // 0..1, widens the highlight
}

// HighlightMaterialKey is substituted for a selected component's material.
const HighlightMaterialKey = "highlight"

var materialTable = []MaterialPreset{
	{Key: "carbon-steel", Label: "Carbon Steel", R: 142, G: 146, B: 152, Specular: 0.45, Metallic: true, Roughness: 0.55},
	{Key: "stainless", Label: "Stainless Steel", R: 190, G: 194, B: 200, Specular: 0.7, Metallic: true, Roughness: 0.3},
	{Key: "painted-white", Label: "Painted (White)", R: 235, G: 235, B: 230, Specular: 0.2, Roughness: 0.8},
	{Key: "painted-gray", Label: "Painted (Gray)", R: 120, G: 124, B: 130, Specular: 0.2, Roughness: 0.8},
	{Key: "primer-red", Label: "Primer (Red Oxide)", R: 140, G: 62, B: 47, Specular: 0.15, Roughness: 0.9},
	{Key: HighlightMaterialKey, Label: "Selection Highlight", R: 255, G: 170, B: 0, Specular: 0.6, Roughness: 0.4},
}

// ListMaterials returns all selectable materials (the highlight material is
// excluded from the listing but available via GetMaterial).
func ListMaterials() []MaterialPreset {
	out := make([]MaterialPreset, 0, len(materialTable)-1)
	for _, m := range materialTable {
		if m.Key != HighlightMaterialKey {
			out = append(out, m)
		}
	}
	return out
}

// GetMaterial returns the material preset for a key, falling back to
// carbon steel for unknown keys.
func GetMaterial(key string) MaterialPreset {
	for _, m := range materialTable {
		if m.Key == key {
			return m
		}
	}
	return materialTable[0]
}

// LightingPreset positions the key light for the viewport renderer.
// Direction is normalized by the renderer; Ambient is 0..1.
type LightingPreset struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	DirX       float64 `json:"dir_x"`
	DirY       float64 `json:"dir_y"`
	DirZ       float64 `json:"dir_z"`
	Ambient    float64 `json:"ambient"`
	Intensity  float64 `json:"intensity"`
	FillWeight float64 `json:"fill_weight"` // Opposite-direction fill light
}

var lightingTable = []LightingPreset{
	{Key: "workshop", Label: "Workshop", DirX: -0.4, DirY: 0.8, DirZ: 0.45, Ambient: 0.35, Intensity: 0.85, FillWeight: 0.25},
	{Key: "overhead", Label: "Overhead", DirX: 0, DirY: 1, DirZ: 0.1, Ambient: 0.25, Intensity: 1.0, FillWeight: 0.15},
	{Key: "flat", Label: "Flat", DirX: 0, DirY: 0.3, DirZ: 1, Ambient: 0.6, Intensity: 0.5, FillWeight: 0.4},
}

// GetLighting returns the lighting preset for a key, defaulting to workshop.
func GetLighting(key string) LightingPreset {
	for _, l := range lightingTable {
		if l.Key == key {
			return l
		}
	}
	return lightingTable[0]
}

// ViewPreset is a named camera position expressed as yaw/pitch about the
// vessel center plus a distance factor relative to the vessel's bounding
// radius.
type ViewPreset struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	YawDeg     float64 `json:"yaw_deg"`
	PitchDeg   float64 `json:"pitch_deg"`
	DistFactor float64 `json:"dist_factor"`
}

var viewTable = []ViewPreset{
	{Key: "iso", Label: "Isometric", YawDeg: 45, PitchDeg: 30, DistFactor: 2.6},
	{Key: "front", Label: "Front", YawDeg: 0, PitchDeg: 0, DistFactor: 2.4},
	{Key: "top", Label: "Top", YawDeg: 0, PitchDeg: 89, DistFactor: 2.4},
	{Key: "end", Label: "End", YawDeg: 90, PitchDeg: 0, DistFactor: 2.4},
}

// ListViews returns the view presets in menu order.
func ListViews() []ViewPreset {
	out := make([]ViewPreset, len(viewTable))
	copy(out, viewTable)
	return out
}

// GetView returns the view preset for a key, defaulting to isometric.
func GetView(key string) ViewPreset {
	for _, v := range viewTable {
		if v.Key == key {
			return v
		}
	}
	return viewTable[0]
}
