package geom

import "math"

// Interval is a closed 1D interval [Start, End] along some axis.
type Interval struct {
	Start float64 `json:"start" bson:"start"`
	End   float64 `json:"end" bson:"end"`
}

// Length returns End - Start. Negative for an inverted interval.
func (iv Interval) Length() float64 {
	return iv.End - iv.Start
}

// IsEmpty returns true if the interval has no positive extent.
func (iv Interval) IsEmpty() bool {
	return iv.End <= iv.Start
}

// Intersect returns the overlap of two intervals. The result may be empty.
func (iv Interval) Intersect(other Interval) Interval {
	return Interval{
		Start: math.Max(iv.Start, other.Start),
		End:   math.Min(iv.End, other.End),
	}
}

// Shrink moves both ends inward by d. The result may be empty.
func (iv Interval) Shrink(d float64) Interval {
	return Interval{Start: iv.Start + d, End: iv.End - d}
}

// Quantize rounds x down to the nearest multiple of step.
// It is idempotent and never increases x. A non-positive step
// returns x unchanged.
func Quantize(x, step float64) float64 {
	if step <= 0 || x <= 0 {
		return x
	}
	return math.Floor(x/step) * step
}
