// Package recommendation scores how much a player would benefit from coaching.
//
// The weights below are a heuristic carried over unchanged from the mobile app
// so that both produce the same numbers for the same logbook.
package recommendation

import (
	"math"

	"github.com/2beens/coachstats/internal/trainingstats/logbook"
)

const (
	// NeutralScore is returned while there is too little history to judge.
	NeutralScore = 50
	// MinEntries is the logbook size from which the composite score is computed.
	MinEntries = 3

	moodWeight       = 40.0
	difficultyWeight = 30.0
	stagnationWeight = 20.0
	cadenceWeight    = 10.0

	weakSkillsCap = 3.0
)

// Components exposes the four weighted parts of a score, before rounding.
type Components struct {
	Mood       float64 `json:"mood"`
	Difficulty float64 `json:"difficulty"`
	Stagnation float64 `json:"stagnation"`
	Cadence    float64 `json:"cadence"`
}

func (c Components) Sum() float64 {
	return c.Mood + c.Difficulty + c.Stagnation + c.Cadence
}

// Score combines recent mood, difficulty frequency, skill stagnation and session
// cadence into an integer in [0, 100].
func Score(window logbook.WindowSummary, frequency logbook.FrequencySummary) int {
	if window.TotalSessions < MinEntries {
		return NeutralScore
	}
	return clamp(int(math.Round(Breakdown(window, frequency).Sum())))
}

// Breakdown returns the weighted components Score sums up.
func Breakdown(window logbook.WindowSummary, frequency logbook.FrequencySummary) Components {
	mood := math.Max(0, (3-window.Last5AverageFeeling)/2) * moodWeight

	difficulty := clampUnit(frequency.RecentDifficultyRatio) * difficultyWeight

	stagnation := math.Min(float64(len(frequency.WeakSkills))/weakSkillsCap, 1) * stagnationWeight

	cadence := cadenceWeight
	if window.WeekSessions >= 2 {
		cadence = math.Max(0, float64(3-window.WeekSessions)/3) * cadenceWeight
	}

	return Components{
		Mood:       mood,
		Difficulty: difficulty,
		Stagnation: stagnation,
		Cadence:    cadence,
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
