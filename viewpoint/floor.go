package viewpoint

import "sort"

// EstimateFloor infers the ground elevation of a scene from a batch of
// navigable-surface height samples. It returns the sample at the given low
// percentile of the sorted batch: raw navigable points include furniture
// tops, stairs, and balconies, and a low percentile (5th-10th) robustly
// approximates the true ground plane because floors dominate the population
// of lowest reachable elevations in indoor scenes.
//
// The percentile is a fraction in [0, 1). The returned value is exactly
// sorted[int(len*percentile)], never an interpolation. Fewer than minSamples
// heights returns ErrTooFewSamples; there is no silent default.
func EstimateFloor(heights []float64, percentile float64, minSamples int) (float64, error) {
	if percentile < 0 || percentile >= 1 {
		return 0, ErrBadPercentile
	}
	if minSamples < 1 {
		minSamples = 1
	}
	if len(heights) < minSamples {
		return 0, ErrTooFewSamples
	}

	sorted := make([]float64, len(heights))
	copy(sorted, heights)
	sort.Float64s(sorted)

	return sorted[int(float64(len(sorted))*percentile)], nil
}
