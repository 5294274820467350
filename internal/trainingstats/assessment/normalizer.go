package assessment

import (
	"time"

	"github.com/2beens/coachstats/internal/trainingstats/coerce"

	log "github.com/sirupsen/logrus"
)

// Diagnostics reports how many raw assessments were seen and how many were skipped.
type Diagnostics struct {
	Total   int `json:"total"`
	Skipped int `json:"skipped"`
}

type rawSkillScore struct {
	Total         float64  `mapstructure:"total"`
	MaxScore      *float64 `mapstructure:"maxScore"`
	MaxScoreSnake *float64 `mapstructure:"max_score"`
}

// Normalize coerces raw assessment records. Records without an id or a parseable
// created_at are skipped; unreadable individual skill scores are dropped.
func Normalize(rawAssessments []RawAssessment, loc *time.Location) ([]Assessment, Diagnostics) {
	if loc == nil {
		loc = time.UTC
	}

	diag := Diagnostics{Total: len(rawAssessments)}
	assessments := make([]Assessment, 0, len(rawAssessments))
	for i, raw := range rawAssessments {
		a, ok := normalizeAssessment(raw, loc)
		if !ok {
			diag.Skipped++
			log.Debugf("assessment normalize: skipping malformed record at index %d", i)
			continue
		}
		assessments = append(assessments, a)
	}

	return assessments, diag
}

func normalizeAssessment(raw RawAssessment, loc *time.Location) (Assessment, bool) {
	if raw == nil {
		return Assessment{}, false
	}

	id, ok := coerce.String(raw["id"])
	if !ok {
		return Assessment{}, false
	}
	createdAt, ok := coerce.Time(raw["created_at"], loc)
	if !ok {
		return Assessment{}, false
	}

	a := Assessment{
		ID:        id,
		CreatedAt: createdAt,
		Skills:    make(map[string]SkillScore),
	}
	if t, ok := coerce.String(raw["type"]); ok {
		a.Type = t
	}

	skillsData, _ := coerce.Map(raw["skills_data"])
	for skillID, value := range skillsData {
		if score, ok := normalizeSkillScore(value); ok {
			a.Skills[skillID] = score
		}
	}

	return a, true
}

func normalizeSkillScore(v any) (SkillScore, bool) {
	if total, ok := coerce.Float(v); ok {
		return SkillScore{Total: total}, true
	}

	var raw rawSkillScore
	if err := coerce.Decode(v, &raw); err != nil {
		return SkillScore{}, false
	}
	score := SkillScore{Total: raw.Total}
	switch {
	case raw.MaxScore != nil:
		score.MaxScore, score.HasMaxScore = *raw.MaxScore, true
	case raw.MaxScoreSnake != nil:
		score.MaxScore, score.HasMaxScore = *raw.MaxScoreSnake, true
	}
	return score, true
}
