package imaging

// Options carries the user-facing encode knobs. Quality runs 0 (worst) to
// 100 (best); speed runs 0 (slowest) to 10 (fastest). Out-of-range values
// are clamped, never rejected.
type Options struct {
	Quality int
	Speed   int
}

// Clamp returns a copy with quality and speed forced into their valid ranges.
func (o Options) Clamp() Options {
	o.Quality = clamp(o.Quality, 0, 100)
	o.Speed = clamp(o.Speed, 0, 10)
	return o
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
