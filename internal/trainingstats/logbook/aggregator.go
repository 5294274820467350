package logbook

import (
	"math"
	"sort"
	"time"

	"github.com/2beens/coachstats/internal/trainingstats/coerce"
)

const recentFeelingEntries = 5

// WindowSummary holds the time-windowed statistics of a log entry set.
// Hours are rounded to one decimal; averages are left unrounded.
type WindowSummary struct {
	TotalHours           float64            `json:"totalHours"`
	WeekHours            float64            `json:"weekHours"`
	WeekSessions         int                `json:"weekSessions"`
	MonthHours           float64            `json:"monthHours"`
	MonthSessions        int                `json:"monthSessions"`
	WeeklyAverageFeeling float64            `json:"weeklyAverageFeeling"`
	Last5AverageFeeling  float64            `json:"last5AverageFeeling"`
	FirstSessionDate     time.Time          `json:"firstSessionDate"`
	TotalSessions        int                `json:"totalSessions"`
	SessionTypeHours     map[string]float64 `json:"sessionTypeHours"`
}

// WindowTotals are the sums of an arbitrary bounded window.
type WindowTotals struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Hours          float64   `json:"hours"`
	Sessions       int       `json:"sessions"`
	AverageFeeling float64   `json:"averageFeeling"`
}

// WeekBucket is one calendar week of the weekly hours series.
type WeekBucket struct {
	WeekStart time.Time `json:"weekStart"`
	Hours     float64   `json:"hours"`
	Sessions  int       `json:"sessions"`
}

// Aggregator buckets log entries into calendar windows. Weeks start on weekStart,
// and "today" is derived from now in loc.
type Aggregator struct {
	weekStart time.Weekday
	loc       *time.Location
}

func NewAggregator(weekStart time.Weekday, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		weekStart: weekStart,
		loc:       loc,
	}
}

// Aggregate computes totals, current week and month sums and the feeling averages.
// Both windows are right-closed at now; entries dated after now only count in totals.
func (a *Aggregator) Aggregate(entries []LogEntry, now time.Time) WindowSummary {
	today := a.today(now)
	weekStart := a.WeekStart(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, a.loc)

	var totalHours, weekHours, monthHours float64
	var weekSessions, monthSessions, weekFeelingSum int
	typeHours := make(map[string]float64)
	firstSession := today

	for i, e := range entries {
		day := a.day(e.Date)
		totalHours += e.Hours
		typeHours[sessionTypeOf(e)] += e.Hours

		if i == 0 || day.Before(firstSession) {
			firstSession = day
		}

		if inWindow(day, weekStart, today) {
			weekHours += e.Hours
			weekSessions++
			weekFeelingSum += e.Feeling
		}
		if inWindow(day, monthStart, today) {
			monthHours += e.Hours
			monthSessions++
		}
	}

	sessionTypeHours := make(map[string]float64, len(typeHours))
	for sessionType, hours := range typeHours {
		sessionTypeHours[sessionType] = Round1(hours)
	}

	return WindowSummary{
		TotalHours:           Round1(totalHours),
		WeekHours:            Round1(weekHours),
		WeekSessions:         weekSessions,
		MonthHours:           Round1(monthHours),
		MonthSessions:        monthSessions,
		WeeklyAverageFeeling: mean(weekFeelingSum, weekSessions),
		Last5AverageFeeling:  last5AverageFeeling(entries),
		FirstSessionDate:     firstSession,
		TotalSessions:        len(entries),
		SessionTypeHours:     sessionTypeHours,
	}
}

// Rolling sums the last days calendar days up to and including today.
func (a *Aggregator) Rolling(entries []LogEntry, now time.Time, days int) WindowTotals {
	if days < 1 {
		days = 1
	}
	today := a.today(now)
	from := today.AddDate(0, 0, -(days - 1))

	var hours float64
	var sessions, feelingSum int
	for _, e := range entries {
		if !inWindow(a.day(e.Date), from, today) {
			continue
		}
		hours += e.Hours
		sessions++
		feelingSum += e.Feeling
	}

	return WindowTotals{
		From:           from,
		To:             today,
		Hours:          Round1(hours),
		Sessions:       sessions,
		AverageFeeling: mean(feelingSum, sessions),
	}
}

// WeeklyHours returns the last weeks calendar weeks, oldest first, ending with the
// current week. Weeks without sessions are kept with zero values.
func (a *Aggregator) WeeklyHours(entries []LogEntry, now time.Time, weeks int) []WeekBucket {
	if weeks < 1 {
		return []WeekBucket{}
	}

	today := a.today(now)
	currentWeek := a.WeekStart(now)
	firstWeek := currentWeek.AddDate(0, 0, -7*(weeks-1))

	hours := make([]float64, weeks)
	buckets := make([]WeekBucket, weeks)
	for i := range buckets {
		buckets[i].WeekStart = firstWeek.AddDate(0, 0, 7*i)
	}

	for _, e := range entries {
		day := a.day(e.Date)
		if !inWindow(day, firstWeek, today) {
			continue
		}
		idx := daysBetween(firstWeek, day) / 7
		if idx < 0 || idx >= weeks {
			continue
		}
		hours[idx] += e.Hours
		buckets[idx].Sessions++
	}

	for i := range buckets {
		buckets[i].Hours = Round1(hours[i])
	}

	return buckets
}

// WeekStart returns midnight of the first day of the calendar week containing now.
func (a *Aggregator) WeekStart(now time.Time) time.Time {
	today := a.today(now)
	offset := (int(today.Weekday()) - int(a.weekStart) + 7) % 7
	return today.AddDate(0, 0, -offset)
}

func (a *Aggregator) today(now time.Time) time.Time {
	return coerce.Day(now.In(a.loc))
}

func (a *Aggregator) day(t time.Time) time.Time {
	// entry dates are calendar days already resolved in loc by Normalize;
	// re-anchor the y/m/d in loc without shifting it
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.loc)
}

func inWindow(day, from, to time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

func daysBetween(from, to time.Time) int {
	// calendar arithmetic, DST safe
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 12, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 12, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func sessionTypeOf(e LogEntry) string {
	if e.SessionType == "" {
		return DefaultSessionType
	}
	return e.SessionType
}

func last5AverageFeeling(entries []LogEntry) float64 {
	recent := RecentFirst(entries)
	if len(recent) > recentFeelingEntries {
		recent = recent[:recentFeelingEntries]
	}
	sum := 0
	for _, e := range recent {
		sum += e.Feeling
	}
	return mean(sum, len(recent))
}

// RecentFirst returns a copy of entries ordered newest first by date.
// Entries on the same date keep their original relative order.
func RecentFirst(entries []LogEntry) []LogEntry {
	sorted := make([]LogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func mean(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
