package system

import "math"

// Frame is the per-frame context passed to every update
type Frame struct {
	DT     float64 // seconds since the previous frame, unclamped
	Paused bool
	Debug  bool
}

// clampDT bounds a frame step to [0, limit]
func clampDT(dt, limit float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}
