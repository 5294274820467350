// Package coerce converts loosely typed record-store values into the typed shapes
// the training analytics engine works with. None of the helpers fail loudly: callers
// get a zero value plus an ok flag and decide on their own default.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// StringSet coerces v into an ordered set of non-empty, trimmed strings.
// JSON-encoded arrays are decoded; a string that is not valid JSON becomes
// a single-element set. Duplicates keep their first position.
func StringSet(v any) []string {
	set := newOrderedSet()
	collectStrings(v, set, true)
	return set.items
}

func collectStrings(v any, set *orderedSet, decodeJSON bool) {
	switch val := v.(type) {
	case nil:
	case string:
		s := strings.TrimSpace(val)
		if s == "" || (decodeJSON && s == "null") {
			return
		}
		if decodeJSON && (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "\"")) {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				collectStrings(decoded, set, false)
				return
			}
		}
		set.add(s)
	case []string:
		for _, item := range val {
			collectStrings(item, set, false)
		}
	case []any:
		for _, item := range val {
			collectStrings(item, set, false)
		}
	case float64, int, int64, json.Number:
		set.add(fmt.Sprint(val))
	}
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{
		seen:  make(map[string]struct{}),
		items: []string{},
	}
}

func (s *orderedSet) add(item string) {
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

// String returns v as a trimmed string; numbers are formatted without exponent.
func String(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}

// Float returns v as a finite float64. Numeric strings are accepted.
func Float(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Time parses v as a timestamp or calendar date. Values without a zone are
// interpreted in loc.
func Time(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val.In(loc), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			t, err := time.ParseInLocation(layout, s, loc)
			if err == nil {
				return t.In(loc), true
			}
		}
	}
	return time.Time{}, false
}

// Map coerces v into a map, decoding JSON-encoded objects.
func Map(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case string:
		var decoded map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(val)), &decoded); err != nil {
			return nil, false
		}
		return decoded, decoded != nil
	default:
		return nil, false
	}
}

// Decode weakly decodes a loosely typed map (or its JSON encoding) into out,
// accepting numeric strings for number fields.
func Decode(v any, out any) error {
	m, ok := Map(v)
	if !ok {
		return fmt.Errorf("not an object: %T", v)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
