package app

import "time"

// ClockSeed derives a reseed value from now. It never returns 0, which
// Simulation.Reset reads as "keep the configured seed".
func ClockSeed(now time.Time) int64 {
	if seed := now.UnixNano(); seed != 0 {
		return seed
	}
	return 1
}
