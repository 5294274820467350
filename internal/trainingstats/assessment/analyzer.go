package assessment

import (
	"math"
	"sort"
	"time"
)

// ScorePoint is one point of a skill trend series.
type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// SkillLevel is a skill's latest score and its classification.
type SkillLevel struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Percentage float64 `json:"percentage"`
	Level      Level   `json:"level"`
}

// Analysis holds the per-skill statistics derived from assessment history.
type Analysis struct {
	// PerSkillAverage is the rounded mean over the assessments that scored the skill.
	PerSkillAverage map[string]int `json:"perSkillAverage"`
	// LastTwoDelta is latest minus previous score of a skill. A missing key means
	// fewer than two scores exist, not zero change.
	LastTwoDelta map[string]float64 `json:"lastTwoDelta"`
	// TrendSeries holds up to maxSeriesLength most recent scores, oldest first.
	TrendSeries   map[string][]ScorePoint `json:"trendSeries"`
	LatestSummary map[string]SkillLevel   `json:"latestSummary"`
	// Assessments is the number of qualifying (non intake) assessments.
	Assessments int `json:"assessments"`
}

// Analyze computes per-skill averages, last-two deltas, bounded trend series and
// latest levels for every catalog skill. Intake assessments and skills outside
// the catalog are ignored. The input is not modified.
func Analyze(assessments []Assessment, catalog *Catalog, maxSeriesLength int) Analysis {
	qualifying := chronological(assessments)

	analysis := Analysis{
		PerSkillAverage: make(map[string]int),
		LastTwoDelta:    make(map[string]float64),
		TrendSeries:     make(map[string][]ScorePoint),
		LatestSummary:   make(map[string]SkillLevel),
		Assessments:     len(qualifying),
	}

	for _, skill := range catalog.Skills() {
		var points []ScorePoint
		var sum float64
		var latest SkillScore
		for _, a := range qualifying {
			score, ok := a.Skills[skill.ID]
			if !ok {
				continue
			}
			points = append(points, ScorePoint{Date: a.CreatedAt, Score: score.Total})
			sum += score.Total
			latest = score
		}
		if len(points) == 0 {
			continue
		}

		analysis.PerSkillAverage[skill.ID] = int(math.Round(sum / float64(len(points))))

		if n := len(points); n >= 2 {
			analysis.LastTwoDelta[skill.ID] = points[n-1].Score - points[n-2].Score
		}

		if maxSeriesLength > 0 {
			start := 0
			if len(points) > maxSeriesLength {
				start = len(points) - maxSeriesLength
			}
			series := make([]ScorePoint, len(points)-start)
			copy(series, points[start:])
			analysis.TrendSeries[skill.ID] = series
		}

		analysis.LatestSummary[skill.ID] = skillLevel(latest, skill)
	}

	return analysis
}

// chronological drops intake assessments and orders the rest oldest first.
// Stores deliver newest first, so equal timestamps are resolved by reversed input order.
func chronological(assessments []Assessment) []Assessment {
	qualifying := make([]Assessment, 0, len(assessments))
	for i := len(assessments) - 1; i >= 0; i-- {
		if assessments[i].IsFirstTime() {
			continue
		}
		qualifying = append(qualifying, assessments[i])
	}
	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].CreatedAt.Before(qualifying[j].CreatedAt)
	})
	return qualifying
}

func skillLevel(score SkillScore, skill Skill) SkillLevel {
	maxScore := skill.MaxScore
	if score.HasMaxScore {
		maxScore = score.MaxScore
	}

	var percentage float64
	if maxScore > 0 {
		percentage = score.Total / maxScore * 100
	}
	percentage = math.Max(0, math.Min(100, percentage))

	return SkillLevel{
		Score:      score.Total,
		MaxScore:   maxScore,
		Percentage: math.Round(percentage*10) / 10,
		Level:      LevelFor(percentage),
	}
}
