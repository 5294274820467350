package logbook

import "math"

// TargetStats summarizes how often structured drills reached their target.
type TargetStats struct {
	Tracked      int `json:"tracked"`
	Accomplished int `json:"accomplished"`
	// Rate is the accomplished share in whole percent.
	Rate int `json:"rate"`
}

// Targets counts entries carrying exercise details with a positive target and
// how many of them reached it (result >= target).
func Targets(entries []LogEntry) TargetStats {
	var stats TargetStats
	for _, e := range entries {
		if e.ExerciseDetails == nil || e.ExerciseDetails.Target <= 0 {
			continue
		}
		stats.Tracked++
		if e.ExerciseDetails.Result >= e.ExerciseDetails.Target {
			stats.Accomplished++
		}
	}

	if stats.Tracked > 0 {
		stats.Rate = int(math.Round(float64(stats.Accomplished) / float64(stats.Tracked) * 100))
	}

	return stats
}
