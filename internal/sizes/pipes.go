// Package sizes provides immutable engineering lookup tables: standard pipe
// sizes, lifting lug size classes, and viewport presets. Tables are defined
// at package init and never mutated.
package sizes

import "math"

// PipeSize describes one standard pipe size with its matching weld-neck
// flange dimensions. All dimensions are millimeters.
type PipeSize struct {
	NPS             string  `json:"nps"`              // Nominal pipe size designation
	OD              float64 `json:"od"`               // Pipe outside diameter
	ID              float64 `json:"id"`               // Pipe inside diameter (Sch 40)
	FlangeOD        float64 `json:"flange_od"`        // Class 150 flange outside diameter
	FlangeThickness float64 `json:"flange_thickness"` // Class 150 flange thickness
}

// pipeTable is ordered smallest to largest. NearestPipe relies on this order
// for tie-breaking.
var pipeTable = []PipeSize{
	{NPS: "1/2\"", OD: 21.3, ID: 15.8, FlangeOD: 88.9, FlangeThickness: 11.2},
	{NPS: "3/4\"", OD: 26.7, ID: 20.9, FlangeOD: 98.4, FlangeThickness: 12.7},
	{NPS: "1\"", OD: 33.4, ID: 26.6, FlangeOD: 107.9, FlangeThickness: 14.3},
	{NPS: "1 1/2\"", OD: 48.3, ID: 40.9, FlangeOD: 127.0, FlangeThickness: 17.5},
	{NPS: "2\"", OD: 60.3, ID: 52.5, FlangeOD: 152.4, FlangeThickness: 19.1},
	{NPS: "3\"", OD: 88.9, ID: 77.9, FlangeOD: 190.5, FlangeThickness: 23.9},
	{NPS: "4\"", OD: 114.3, ID: 102.3, FlangeOD: 228.6, FlangeThickness: 23.9},
	{NPS: "6\"", OD: 168.3, ID: 154.1, FlangeOD: 279.4, FlangeThickness: 25.4},
	{NPS: "8\"", OD: 219.1, ID: 202.7, FlangeOD: 342.9, FlangeThickness: 28.6},
	{NPS: "10\"", OD: 273.1, ID: 254.5, FlangeOD: 406.4, FlangeThickness: 30.2},
	{NPS: "12\"", OD: 323.9, ID: 303.2, FlangeOD: 482.6, FlangeThickness: 31.8},
	{NPS: "14\"", OD: 355.6, ID: 333.4, FlangeOD: 533.4, FlangeThickness: 35.0},
	{NPS: "16\"", OD: 406.4, ID: 381.0, FlangeOD: 596.9, FlangeThickness: 36.6},
	{NPS: "18\"", OD: 457.2, ID: 428.7, FlangeOD: 635.0, FlangeThickness: 39.7},
	{NPS: "20\"", OD: 508.0, ID: 477.8, FlangeOD: 698.5, FlangeThickness: 42.9},
	{NPS: "24\"", OD: 609.6, ID: 575.0, FlangeOD: 812.8, FlangeThickness: 47.7},
}

// ListPipes returns all standard pipe sizes in table order.
func ListPipes() []PipeSize {
	out := make([]PipeSize, len(pipeTable))
	copy(out, pipeTable)
	return out
}

// GetPipe returns the pipe size with the given NPS designation.
func GetPipe(nps string) (PipeSize, bool) {
	for _, p := range pipeTable {
		if p.NPS == nps {
			return p, true
		}
	}
	return PipeSize{}, false
}

// NearestPipe returns the table entry whose inside diameter is closest to
// the given bore. Ties go to the earlier table entry.
func NearestPipe(boreID float64) PipeSize {
	best := pipeTable[0]
	bestDiff := math.Abs(pipeTable[0].ID - boreID)
	for _, p := range pipeTable[1:] {
		diff := math.Abs(p.ID - boreID)
		if diff < bestDiff {
			best = p
			bestDiff = diff
		}
	}
	return best
}
