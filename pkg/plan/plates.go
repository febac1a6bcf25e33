package plan

// gapSlack absorbs float noise when a profile gap is nominally equal to
// the recipe span.
const gapSlack = 1e-9

// LayoutPlates packs heat-transfer plates into the gaps between adjacent
// support profiles.
//
// For each adjacent pair the safe zone is the longitudinal interval where
// both profiles physically exist; the recipe block is centered in the
// physical gap between the profiles' facing edges and shifted by the
// calibrated visual offset. Pairs whose gap cannot hold the full recipe
// span, or whose safe zone is empty, are skipped. Plates never extend
// past their pair's safe zone.
//
// The result is ordered by profile pair, recipe order within each pair,
// and is fully determined by its inputs.
func LayoutPlates(profiles []Profile, sys SystemType, room Room, cfg Config) ([]Plate, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}
	recipe, err := cfg.Recipe(sys)
	if err != nil {
		return nil, err
	}

	span := room.ToDrawing(cfg.RecipeSpan)
	width := room.ToDrawing(cfg.PlateWidth)
	stride := room.ToDrawing(cfg.PlateWidth + recipe.Gap)
	offset := room.ToDrawing(cfg.VisualOffset)

	var plates []Plate
	for i := 0; i+1 < len(profiles); i++ {
		lower, upper := profiles[i], profiles[i+1]

		safe := lower.Interval().Intersect(upper.Interval())
		if safe.IsEmpty() {
			continue
		}

		gap := upper.InnerEdge() - lower.OuterEdge()
		if gap+gapSlack < span {
			continue
		}

		blockStart := lower.OuterEdge() + (gap-span)/2 + offset
		for k := 0; k < recipe.Plates; k++ {
			pos := blockStart + float64(k)*stride + width/2
			plates = append(plates, Plate{
				Start:       pointAt(lower.Orientation, safe.Start, pos),
				End:         pointAt(lower.Orientation, safe.End, pos),
				Width:       width,
				Orientation: lower.Orientation,
				Pos:         pos,
				Pair:        i,
			})
		}
	}

	return plates, nil
}
