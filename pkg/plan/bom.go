package plan

import (
	"math"
	"sort"

	"github.com/deckwerk/deckplan/pkg/geom"
)

// BOM aggregates the layout into bill-of-materials figures.
// Histogram keys are physical lengths in whole millimetres; plate lengths
// are rounded down to the configured manufacturing increment.
type BOM struct {
	AreaM2         float64     `json:"area_m2" bson:"area_m2"`
	ProfileLengths map[int]int `json:"profile_lengths" bson:"profile_lengths"`
	PlateLengths   map[int]int `json:"plate_lengths" bson:"plate_lengths"`
	TotalProfileMM float64     `json:"total_profile_mm" bson:"total_profile_mm"`
	TotalPlateMM   float64     `json:"total_plate_mm" bson:"total_plate_mm"`
}

// BuildBOM computes the bill-of-materials aggregation for a layout.
func BuildBOM(room Room, profiles []Profile, plates []Plate, cfg Config) BOM {
	b := BOM{
		AreaM2:         room.AreaM2(),
		ProfileLengths: make(map[int]int),
		PlateLengths:   make(map[int]int),
	}

	for _, p := range profiles {
		mm := room.ToMM(p.Length())
		b.ProfileLengths[int(math.Round(mm))]++
		b.TotalProfileMM += mm
	}

	for _, p := range plates {
		mm := room.ToMM(p.Length())
		b.PlateLengths[int(geom.Quantize(mm, cfg.BOMPlateStep))]++
		b.TotalPlateMM += mm
	}

	return b
}

// SortedKeys returns the keys of a length histogram in ascending order.
func SortedKeys(hist map[int]int) []int {
	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
