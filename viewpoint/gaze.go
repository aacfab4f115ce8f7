package viewpoint

import "fmt"

// DefaultYaws covers the four cardinal facings. Only forward is flagged for
// pitch variants, bounding the catalog to level views plus a few tilts.
func DefaultYaws() []YawSpec {
	return []YawSpec{
		{Degrees: 0, Label: "forward", PitchVariants: true},
		{Degrees: 90, Label: "right"},
		{Degrees: 180, Label: "back"},
		{Degrees: 270, Label: "left"},
	}
}

// DefaultPitches is a small look-up/look-down pair, about the tilt range of
// a standing person glancing around a room.
func DefaultPitches() []PitchSpec {
	return []PitchSpec{
		{Degrees: 15, Label: "up"},
		{Degrees: -15, Label: "down"},
	}
}

// BuildGazeCatalog produces the run's read-only set of gaze directions: one
// level entry per yaw, followed by one entry per (pitch-variant yaw x pitch).
// Order is deterministic: level entries in yaw order, then pitched entries
// in yaw-major order, so output naming is reproducible across runs.
func BuildGazeCatalog(yaws []YawSpec, pitches []PitchSpec) []GazeSpec {
	catalog := make([]GazeSpec, 0, len(yaws)+len(yaws)*len(pitches))

	for _, y := range yaws {
		catalog = append(catalog, GazeSpec{
			Name:       fmt.Sprintf("%s_level", y.Label),
			YawDegrees: y.Degrees,
		})
	}

	for _, y := range yaws {
		if !y.PitchVariants {
			continue
		}
		for _, p := range pitches {
			catalog = append(catalog, GazeSpec{
				Name:         fmt.Sprintf("%s_%s", y.Label, p.Label),
				YawDegrees:   y.Degrees,
				PitchDegrees: p.Degrees,
			})
		}
	}

	return catalog
}
