package habitat

// SceneStats accumulates the outcome counts for one scene. Capture failures
// (render oracle problems) and validator rejections (expected filtering) are
// separate on purpose; conflating them would hide renderer faults behind
// ordinary dark-room rejections.
type SceneStats struct {
	Scene               string
	Viewpoints          int
	Captures            int
	CaptureFailures     int
	Rejected            int
	Accepted            int
	OrientationWarnings int
}

// RunStats aggregates a whole run.
type RunStats struct {
	Scenes        []SceneStats
	ScenesSkipped int
	TotalAccepted int
}

// add folds one scene's counts into the run totals. Per-scene partial sums
// merged here keep the accumulation safe if scenes are ever processed by
// independent workers.
func (r *RunStats) add(s SceneStats) {
	r.Scenes = append(r.Scenes, s)
	r.TotalAccepted += s.Accepted
}
