package assessment

import (
	"strings"
	"time"
)

// TypeFirstTime marks the intake assessment, which carries no comparable skill scores.
const TypeFirstTime = "first_time"

// RawAssessment is an assessment record as delivered by the record store.
type RawAssessment map[string]any

// SkillScore is a single skill's score within one assessment.
type SkillScore struct {
	Total    float64 `json:"total"`
	MaxScore float64 `json:"maxScore"`
	// HasMaxScore is set when the record carried its own max score, even a zero one.
	HasMaxScore bool `json:"hasMaxScore"`
}

// Assessment is a normalized coach skill assessment.
type Assessment struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"createdAt"`
	Type      string                `json:"type"`
	Skills    map[string]SkillScore `json:"skills"`
}

// IsFirstTime reports whether a is an intake assessment. Stores have used a few
// spellings of the discriminator over time.
func (a Assessment) IsFirstTime() bool {
	t := strings.ToLower(strings.TrimSpace(a.Type))
	t = strings.NewReplacer("-", "_", " ", "_").Replace(t)
	return t == TypeFirstTime || t == "firsttime"
}

// Level is the three-tier skill classification.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

func (l Level) String() string {
	return string(l)
}

// LevelFor classifies a percentage score.
func LevelFor(percentage float64) Level {
	switch {
	case percentage >= 75:
		return LevelAdvanced
	case percentage >= 50:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
