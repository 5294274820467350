package logbook

import "time"

// DefaultSessionType is used for bucketing entries stored without a session type.
const DefaultSessionType = "training"

// RawLogEntry is a log entry as delivered by the record store. Tag fields may arrive
// as JSON-encoded strings, bare strings or arrays.
type RawLogEntry map[string]any

// LogEntry is a normalized training log entry.
type LogEntry struct {
	ID              string           `json:"id"`
	Date            time.Time        `json:"date"`
	Hours           float64          `json:"hours"`
	Feeling         int              `json:"feeling"`
	TrainingFocus   []string         `json:"trainingFocus"`
	Difficulty      []string         `json:"difficulty"`
	SessionType     string           `json:"sessionType"`
	ExerciseDetails *ExerciseDetails `json:"exerciseDetails,omitempty"`
}

// ExerciseDetails carries the result/target pair of a structured drill.
type ExerciseDetails struct {
	Result float64 `json:"result"`
	Target float64 `json:"target"`
}

func (e LogEntry) hasDifficulty() bool {
	return len(e.Difficulty) > 0
}

// TagField selects which tag set of a LogEntry is ranked.
type TagField string

const (
	FieldTrainingFocus TagField = "trainingFocus"
	FieldDifficulty    TagField = "difficulty"
)

func (f TagField) String() string {
	return string(f)
}

func (f TagField) IsValid() bool {
	switch f {
	case FieldTrainingFocus, FieldDifficulty:
		return true
	default:
		return false
	}
}

func (f TagField) tags(e LogEntry) []string {
	switch f {
	case FieldTrainingFocus:
		return e.TrainingFocus
	case FieldDifficulty:
		return e.Difficulty
	default:
		return nil
	}
}
