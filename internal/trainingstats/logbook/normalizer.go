package logbook

import (
	"math"
	"time"

	"github.com/2beens/coachstats/internal/trainingstats/coerce"

	log "github.com/sirupsen/logrus"
)

const neutralFeeling = 3

// Diagnostics reports how many raw records were seen and how many of them
// had to be excluded as malformed.
type Diagnostics struct {
	Total   int `json:"total"`
	Skipped int `json:"skipped"`
}

// Normalize coerces raw store records into LogEntry values.
// Records without an id or a parseable date are skipped and counted in the
// returned Diagnostics; malformed individual fields fall back to safe defaults.
// Plain dates are taken as written and read in loc (UTC when nil); timestamps
// carrying an offset are moved into loc first, so the entry's day is the day
// in loc, not the day of the writer's offset.
func Normalize(rawEntries []RawLogEntry, loc *time.Location) ([]LogEntry, Diagnostics) {
	if loc == nil {
		loc = time.UTC
	}

	diag := Diagnostics{Total: len(rawEntries)}
	entries := make([]LogEntry, 0, len(rawEntries))
	for i, raw := range rawEntries {
		entry, ok := normalizeEntry(raw, loc)
		if !ok {
			diag.Skipped++
			log.Debugf("logbook normalize: skipping malformed record at index %d", i)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, diag
}

func normalizeEntry(raw RawLogEntry, loc *time.Location) (LogEntry, bool) {
	if raw == nil {
		return LogEntry{}, false
	}

	id, ok := coerce.String(raw["id"])
	if !ok {
		return LogEntry{}, false
	}

	date, ok := coerce.Time(firstPresent(raw, "date", "created_at"), loc)
	if !ok {
		return LogEntry{}, false
	}

	hours, ok := coerce.Float(raw["hours"])
	if !ok || hours < 0 {
		hours = 0
	}

	entry := LogEntry{
		ID:            id,
		Date:          coerce.Day(date),
		Hours:         hours,
		Feeling:       normalizeFeeling(raw["feeling"]),
		TrainingFocus: coerce.StringSet(raw["training_focus"]),
		Difficulty:    coerce.StringSet(raw["difficulty"]),
		SessionType:   DefaultSessionType,
	}

	if sessionType, ok := coerce.String(raw["session_type"]); ok {
		entry.SessionType = sessionType
	}

	if detailsRaw, present := raw["exercise_details"]; present && detailsRaw != nil {
		var details ExerciseDetails
		if err := coerce.Decode(detailsRaw, &details); err == nil {
			entry.ExerciseDetails = &details
		}
	}

	return entry, true
}

func normalizeFeeling(v any) int {
	f, ok := coerce.Float(v)
	if !ok {
		return neutralFeeling
	}
	// clamp before the int conversion, huge values overflow it
	f = math.Max(1, math.Min(5, f))
	return int(f + 0.5)
}

func firstPresent(raw RawLogEntry, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
