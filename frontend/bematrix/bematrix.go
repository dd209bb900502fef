package bematrix

import "math"

// ModuleMM is the beMatrix frame grid pitch.
const ModuleMM = 62

// Dimension is a length snapped to the module grid.
type Dimension struct {
	MM      int `json:"mm"`
	Modules int `json:"modules"`
}

// FromMeters rounds meters to the nearest whole module, halves rounding up.
// Input is expected to be positive.
func FromMeters(meters float64) Dimension {
	modules := int(math.Floor(meters*1000/ModuleMM + 0.5))
	return Dimension{MM: modules * ModuleMM, Modules: modules}
}

// Meters returns the snapped length in meters.
func (d Dimension) Meters() float64 {
	return float64(d.MM) / 1000
}
